// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"
	"topup-server/commons"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNotConfigured = errors.New("rabbitmq publisher is not configured")

// NoopPublisher drops every event. It is used when no broker URL is set.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	commons.Logger.Debugf("Broker disabled, dropping event %s", routingKey)
	return nil
}

func NewPublisher(c PublisherConfig) (*Publisher, error) {
	if c.AMQPURL == "" {
		return nil, ErrNotConfigured
	}
	if c.Exchange == "" {
		c.Exchange = DefaultExchange
	}
	return &Publisher{config: c, dial: amqp.Dial}, nil
}

// NewPublisherFromEnv reads RABBITMQ_AMQP_URL and RABBITMQ_EXCHANGE.
func NewPublisherFromEnv() (*Publisher, error) {
	return NewPublisher(PublisherConfig{
		AMQPURL:  commons.GetEnv("RABBITMQ_AMQP_URL"),
		Exchange: commons.GetEnv("RABBITMQ_EXCHANGE", DefaultExchange),
	})
}

func (p *Publisher) Exchange() string {
	return p.config.Exchange
}

func (p *Publisher) ensureChannel() (*amqp.Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}
	p.closeLocked()

	conn, err := p.dial(p.config.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.config.Exchange, ExchangeType, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("exchange declare: %w", err)
	}

	p.conn = conn
	p.channel = ch
	commons.Logger.Infof("Connected to broker, publishing on exchange %s", p.config.Exchange)
	return ch, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.ensureChannel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, p.config.Exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		p.closeLocked()
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	commons.Logger.Debugf("Published event %s on %s", routingKey, p.config.Exchange)
	return nil
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

func (p *Publisher) closeLocked() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
