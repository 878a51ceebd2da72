package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/repository"
)

// ErrUnsupportedFileType indicates an upload outside the allow-list.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ErrAttachmentTarget indicates an upload without a valid parent entity.
var ErrAttachmentTarget = errors.New("attachment must reference a project, subproject or activity")

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

var allowedAttachmentTypes = map[string]struct{}{
	"application/pdf":    {},
	"image/png":          {},
	"image/jpeg":         {},
	"application/zip":    {},
	"text/plain":         {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":   {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// AttachmentTarget names the parent entity of an upload.
type AttachmentTarget struct {
	ProjectID    *uint
	SubprojectID *uint
	ActivityID   *uint
}

// AttachmentService stores uploaded files and their metadata. The binary goes
// through the FileUploader; the detected content type is checked against an
// allow-list before anything is persisted.
type AttachmentService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, target AttachmentTarget, uploadedBy uint) (models.Attachment, error)
	ListByEntity(ctx context.Context, entityType string, entityID uint) ([]models.Attachment, error)
}

type attachmentService struct {
	repo     repository.AttachmentRepository
	uploader FileUploader
	logger   zerolog.Logger
}

// NewAttachmentService builds a new attachment service.
func NewAttachmentService(repo repository.AttachmentRepository, uploader FileUploader, logger zerolog.Logger) AttachmentService {
	return &attachmentService{
		repo:     repo,
		uploader: uploader,
		logger:   logger.With().Str("component", "attachment_service").Logger(),
	}
}

func (s *attachmentService) Upload(ctx context.Context, file *multipart.FileHeader, target AttachmentTarget, uploadedBy uint) (models.Attachment, error) {
	if target.ProjectID == nil && target.SubprojectID == nil && target.ActivityID == nil {
		return models.Attachment{}, ErrAttachmentTarget
	}

	src, err := file.Open()
	if err != nil {
		return models.Attachment{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("failed to detect file type: %w", err)
	}
	if _, ok := allowedAttachmentTypes[detected.String()]; !ok {
		return models.Attachment{}, ErrUnsupportedFileType
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return models.Attachment{}, fmt.Errorf("failed to rewind upload: %w", err)
	}

	url, err := s.uploader.Upload(ctx, file.Filename, src)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("failed to store upload: %w", err)
	}

	fileType := detected.String()
	fileSize := file.Size
	attachment := models.Attachment{
		Filename:     file.Filename,
		Path:         url,
		FileType:     &fileType,
		FileSize:     &fileSize,
		ProjectID:    target.ProjectID,
		SubprojectID: target.SubprojectID,
		ActivityID:   target.ActivityID,
		UploadedBy:   uploadedBy,
	}

	if err := s.repo.Create(ctx, &attachment); err != nil {
		return models.Attachment{}, err
	}

	s.logger.Info().Uint("attachment_id", attachment.ID).Str("file_type", fileType).Msg("attachment stored")
	return attachment, nil
}

func (s *attachmentService) ListByEntity(ctx context.Context, entityType string, entityID uint) ([]models.Attachment, error) {
	switch entityType {
	case models.EntityProject, models.EntitySubproject, models.EntityActivity:
		return s.repo.ListByEntity(ctx, entityType, entityID)
	default:
		return nil, ErrAttachmentTarget
	}
}
