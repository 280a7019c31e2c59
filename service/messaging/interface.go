package messaging

import (
	"context"
)

// Queue represents an abstract in-process queue for any payload type
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message, blocking until one is available
	Consume(ctx context.Context) (Message[T], error)

	// TryConsume retrieves a single message if one is pending
	TryConsume() (Message[T], bool)

	// Size returns the number of pending messages
	Size() int
}

// Message represents a message retrieved from a queue
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message
	Nack(err error) error
}
