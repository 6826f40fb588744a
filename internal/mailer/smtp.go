package mailer

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpMailer struct {
	dialer   dialer
	from     string
	renderer *Renderer
	logger   *logger.Logger
}

// NewSMTPMailer delivers mail directly through the configured SMTP relay.
func NewSMTPMailer(cfg config.Mailer, renderer *Renderer, log *logger.Logger) Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.SMTP.Username
	}

	return &smtpMailer{
		dialer:   gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		from:     from,
		renderer: renderer,
		logger:   log,
	}
}

func (m *smtpMailer) Send(ctx context.Context, mail models.Mail) error {
	log := logger.FromContext(ctx)

	subject, body, err := m.renderer.Render(mail)
	if err != nil {
		log.Err(err).Str("func", "*smtpMailer.Send").Msg("error rendering mail")
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Err(err).Str("func", "*smtpMailer.Send").Str("template", string(mail.Template)).Msg("smtp delivery failed")
		return fmt.Errorf("%w: %w", ErrMailNotAccepted, err)
	}

	log.Debug().Str("func", "*smtpMailer.Send").Str("template", string(mail.Template)).Msg("mail delivered")
	return nil
}

func (m *smtpMailer) Close() error { return nil }
