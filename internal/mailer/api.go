package mailer

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/utils"
	"github.com/MKhiriev/fast-home/models"
)

// apiMessage is the JSON body posted to the email API.
type apiMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type apiMailer struct {
	client   *utils.HTTPClient
	url      string
	from     string
	renderer *Renderer
	logger   *logger.Logger
}

// NewAPIMailer posts rendered mail to a transactional email HTTP API.
func NewAPIMailer(cfg config.Mailer, renderer *Renderer, log *logger.Logger) Mailer {
	return &apiMailer{
		client:   utils.NewHTTPClient(cfg.API.Timeout, cfg.API.Key),
		url:      cfg.API.URL,
		from:     cfg.From,
		renderer: renderer,
		logger:   log,
	}
}

func (m *apiMailer) Send(ctx context.Context, mail models.Mail) error {
	log := logger.FromContext(ctx)

	subject, body, err := m.renderer.Render(mail)
	if err != nil {
		return err
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(apiMessage{From: m.from, To: mail.To, Subject: subject, HTML: body}).
		Post(m.url)
	if err != nil {
		log.Err(err).Str("func", "*apiMailer.Send").Msg("email api request failed")
		return fmt.Errorf("%w: %w", ErrMailNotAccepted, err)
	}

	if resp.IsError() {
		log.Error().Str("func", "*apiMailer.Send").Int("status", resp.StatusCode()).Msg("email api refused message")
		return fmt.Errorf("%w: email api responded %s", ErrMailNotAccepted, resp.Status())
	}

	return nil
}

func (m *apiMailer) Close() error { return nil }
