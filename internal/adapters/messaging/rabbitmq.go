package messaging

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"

	"github.com/nextgen-care/clinic-service/internal/config"
)

// RabbitMQBroker implements ports.NotificationSink over one durable queue.
// The api binary publishes to it and the notifier binary consumes from it;
// both declare the queue so either can start first.
type RabbitMQBroker struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queueName string
	cb        *gobreaker.CircuitBreaker
}

func NewRabbitMQBroker(amqpURL, queueName string) (*RabbitMQBroker, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// durable, not autoDelete, not exclusive, synchronous declare
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQBroker{
		conn:      conn,
		ch:        ch,
		queueName: queueName,
		cb:        config.NewCircuitBreaker("RabbitMQ-Notifier"),
	}, nil
}

// Consume hands the delivery stream to the notifier binary. Acks are manual;
// the consumer decides per message.
func (rmq *RabbitMQBroker) Consume() (<-chan amqp.Delivery, error) {
	return rmq.ch.Consume(rmq.queueName, "", false, false, false, false, nil)
}

func (rmq *RabbitMQBroker) Close() error {
	if rmq.ch != nil {
		if err := rmq.ch.Close(); err != nil {
			return err
		}
	}
	if rmq.conn != nil {
		return rmq.conn.Close()
	}
	return nil
}
