// internal/delivery/amqp.go
package delivery

import (
	"encoding/json"

	"github.com/streadway/amqp"
)

// AMQPBackend publishes dispatches to RabbitMQ instead of resolving them
// in process. cmd/worker consumes the queue, plays the vendor, and posts
// receipts over HTTP. Jobs survive a server restart in the broker, which
// narrows (but does not close) the lost-timer gap of the simulator.
type AMQPBackend struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewAMQPBackend(url, queueName string) (*AMQPBackend, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPBackend{conn: conn, channel: ch, queue: queueName}, nil
}

func (b *AMQPBackend) Send(d Dispatch) error {
	body, err := json.Marshal(d)
	if err != nil {
		return err
	}

	return b.channel.Publish(
		"",
		b.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (b *AMQPBackend) Close() {
	b.channel.Close()
	b.conn.Close()
}
