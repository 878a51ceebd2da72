package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/dto"
	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/repository"
)

// ErrUserNotFound indicates the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken indicates a registration with an existing username.
var ErrUsernameTaken = errors.New("username already exists")

// UserService exposes account management use cases.
type UserService interface {
	Create(ctx context.Context, payload dto.UserCreateRequest) (dto.UserResponse, error)
	Get(ctx context.Context, id uint) (dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService builds a new user service.
func NewUserService(repo repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Create(ctx context.Context, payload dto.UserCreateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.repo.GetByUsername(ctx, payload.Username); err == nil {
		return dto.UserResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Username: payload.Username,
		Password: payload.Password,
		Name:     payload.Name,
		Email:    payload.Email,
		Role:     payload.Role,
		Avatar:   payload.Avatar,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user created")
	return dto.NewUserResponse(user), nil
}

func (s *userService) Get(ctx context.Context, id uint) (dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(users), nil
}
