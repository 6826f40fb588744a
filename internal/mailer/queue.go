package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type queueMailer struct {
	mu      sync.Mutex
	channel publisher
	conn    *amqp.Connection
	queue   string
	logger  *logger.Logger
}

// NewQueueMailer dials RabbitMQ, declares the durable mail queue and
// publishes every message to it as a persistent JSON job.
func NewQueueMailer(cfg config.Queue, log *logger.Logger) (Mailer, error) {
	conn, ch, err := openQueue(cfg)
	if err != nil {
		log.Err(err).Str("func", "NewQueueMailer").Msg("error opening mail queue")
		return nil, err
	}

	m := newQueueMailer(ch, cfg.Name, log)
	m.conn = conn
	return m, nil
}

func newQueueMailer(ch publisher, queue string, log *logger.Logger) *queueMailer {
	return &queueMailer{channel: ch, queue: queue, logger: log}
}

// openQueue dials url and declares the durable queue on a fresh channel.
func openQueue(cfg config.Queue) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("error dialing rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}

	if _, err = ch.QueueDeclare(cfg.Name, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("error declaring queue %s: %w", cfg.Name, err)
	}

	return conn, ch, nil
}

func (m *queueMailer) Send(ctx context.Context, mail models.Mail) error {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(mail)
	if err != nil {
		return fmt.Errorf("error encoding mail job: %w", err)
	}

	m.mu.Lock()
	err = m.channel.PublishWithContext(ctx, "", m.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	m.mu.Unlock()

	if err != nil {
		log.Err(err).Str("func", "*queueMailer.Send").Str("queue", m.queue).Msg("error publishing mail job")
		return fmt.Errorf("%w: %w", ErrMailNotAccepted, err)
	}

	log.Debug().Str("func", "*queueMailer.Send").Str("template", string(mail.Template)).Msg("mail job published")
	return nil
}

func (m *queueMailer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.channel.Close()
	if m.conn != nil {
		if cErr := m.conn.Close(); err == nil {
			err = cErr
		}
	}
	return err
}
