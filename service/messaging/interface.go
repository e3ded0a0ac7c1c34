// Package messaging defines the queue abstraction the event feed publishes to.
package messaging

import (
	"context"
)

// Queue carries payloads of type T.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue.
	Publish(ctx context.Context, t *T) error

	// Consume blocks until a message is available or ctx is done.
	Consume(ctx context.Context) (Message[T], error)
}

// Message is a payload retrieved from a queue.
type Message[T any] interface {
	// T returns the payload of this message.
	T() *T

	// Ack acknowledges successful processing.
	Ack() error

	// Nack reports a processing failure; the queue may redeliver.
	Nack(err error) error
}
