// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrDeliveriesClosed is returned by [Consumer.Run] when the broker closes
// the delivery channel.
var ErrDeliveriesClosed = errors.New("mail queue deliveries closed")

// Consumer reads mail jobs from the queue and delivers them with a
// [Mailer]. Run may be called from several goroutines at once; each call
// competes for the same deliveries.
type Consumer struct {
	deliveries <-chan amqp.Delivery
	mailer     Mailer

	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

// NewConsumer opens the queue described by cfg and starts a manual-ack
// consumer with the given prefetch.
func NewConsumer(cfg config.Queue, prefetch int, mailer Mailer, log *logger.Logger) (*Consumer, error) {
	conn, ch, err := openQueue(cfg)
	if err != nil {
		log.Err(err).Str("func", "NewConsumer").Msg("error opening mail queue")
		return nil, err
	}

	if err = ch.Qos(prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("error setting prefetch: %w", err)
	}

	deliveries, err := ch.Consume(cfg.Name, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("error consuming queue %s: %w", cfg.Name, err)
	}

	c := newConsumer(deliveries, mailer, log)
	c.conn = conn
	c.channel = ch
	return c, nil
}

func newConsumer(deliveries <-chan amqp.Delivery, mailer Mailer, log *logger.Logger) *Consumer {
	return &Consumer{deliveries: deliveries, mailer: mailer, logger: log}
}

// Run handles deliveries until ctx is done or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-c.deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.handle(ctx, d)
		}
	}
}

// handle acks delivered jobs. A job that cannot be decoded is dropped; a
// failed delivery is requeued once and dropped when it fails again.
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	log := c.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	var mail models.Mail
	if err := json.Unmarshal(d.Body, &mail); err != nil {
		log.Err(err).Str("func", "*Consumer.handle").Msg("dropping undecodable mail job")
		_ = d.Reject(false)
		return
	}

	if err := c.mailer.Send(ctx, mail); err != nil {
		log.Err(err).Str("func", "*Consumer.handle").
			Bool("redelivered", d.Redelivered).
			Str("template", string(mail.Template)).
			Msg("mail job failed")
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	_ = d.Ack(false)
	log.Info().Str("func", "*Consumer.handle").Str("template", string(mail.Template)).Msg("mail job delivered")
}

// Close stops consuming and releases the connection.
func (c *Consumer) Close() error {
	var err error
	if c.channel != nil {
		err = c.channel.Close()
	}
	if c.conn != nil {
		if cErr := c.conn.Close(); err == nil {
			err = cErr
		}
	}
	return err
}
