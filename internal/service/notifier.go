package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// AttentionNotifier receives "needs attention" conditions found by the daily
// update check. The sweep only surfaces the condition; any escalation (email,
// chat, ticketing) belongs to the consumer on the other side.
type AttentionNotifier interface {
	ProjectNeedsAttention(ctx context.Context, project models.Project, lastUpdateAt *time.Time) error
}

// AttentionEvent is the payload published for a stale project.
type AttentionEvent struct {
	ProjectID    uint       `json:"project_id"`
	ProjectName  string     `json:"project_name"`
	Status       string     `json:"status"`
	LastUpdateAt *time.Time `json:"last_update_at"`
	DetectedAt   time.Time  `json:"detected_at"`
}

type natsNotifier struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
	now     func() time.Time
}

// NewNATSNotifier publishes attention events on the given subject.
func NewNATSNotifier(conn *nats.Conn, subject string, logger zerolog.Logger) AttentionNotifier {
	return &natsNotifier{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "attention_notifier").Logger(),
		now:     time.Now,
	}
}

func (n *natsNotifier) ProjectNeedsAttention(_ context.Context, project models.Project, lastUpdateAt *time.Time) error {
	event := AttentionEvent{
		ProjectID:    project.ID,
		ProjectName:  project.Name,
		Status:       string(project.Status),
		LastUpdateAt: lastUpdateAt,
		DetectedAt:   n.now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := n.conn.Publish(n.subject, payload); err != nil {
		return err
	}

	n.logger.Debug().Uint("project_id", project.ID).Msg("attention event published")
	return nil
}

type noopNotifier struct{}

// NewNoopNotifier is used when no event transport is configured.
func NewNoopNotifier() AttentionNotifier {
	return noopNotifier{}
}

func (noopNotifier) ProjectNeedsAttention(context.Context, models.Project, *time.Time) error {
	return nil
}
