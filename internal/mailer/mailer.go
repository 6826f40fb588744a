package mailer

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
)

//go:generate mockgen -destination=../mock/mailer_mock.go -package=mock . Mailer

// Mailer hands a message over for delivery. A nil error means the transport
// accepted it, not that it reached the inbox.
type Mailer interface {
	Send(ctx context.Context, mail models.Mail) error
	Close() error
}

// NewMailer builds the transport selected by cfg.Mode.
func NewMailer(cfg config.Mailer, log *logger.Logger) (Mailer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case config.MailerModeSMTP:
		return NewSMTPMailer(cfg, renderer, log), nil
	case config.MailerModeQueue:
		return NewQueueMailer(cfg.Queue, log)
	case config.MailerModeAPI:
		return NewAPIMailer(cfg, renderer, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}
}
