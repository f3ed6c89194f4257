// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "topup.purchases"
	ExchangeType    = "topic"
)

type PublisherConfig struct {
	AMQPURL  string
	Exchange string
}

// Publisher sends purchase events to a durable topic exchange. The
// connection is opened lazily and reopened after it drops.
type Publisher struct {
	config  PublisherConfig
	dial    func(url string) (*amqp.Connection, error)
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}
