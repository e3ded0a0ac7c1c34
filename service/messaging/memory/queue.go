// Package memory provides a channel backed messaging.Queue.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/viant/taskflow/service/messaging"
)

// ErrQueueFull is returned by Publish when the buffer is full and the
// queue is configured not to block.
var ErrQueueFull = errors.New("queue is full")

// ErrAlreadyProcessed is returned when a message is acked or nacked twice.
var ErrAlreadyProcessed = errors.New("message already processed")

// Config for memory queue implementation.
type Config struct {
	// MaxRetries is how many times a nacked message is redelivered before
	// it moves to the dead letter list.
	MaxRetries int
	// QueueBuffer is the channel capacity.
	QueueBuffer int
	// Block makes Publish wait for free capacity instead of failing.
	Block bool
}

// DefaultConfig returns a standard configuration for memory queue.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		QueueBuffer: 100,
	}
}

// Message implements messaging.Message.
type Message[T any] struct {
	ID         string
	payload    T
	queue      *Queue[T]
	retryCount int
	mu         sync.Mutex
	processed  bool
}

// T returns the message payload.
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack marks the message processed.
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return ErrAlreadyProcessed
	}
	m.processed = true
	return nil
}

// Nack requeues the message while retries remain, otherwise dead-letters it.
func (m *Message[T]) Nack(error) error {
	m.mu.Lock()
	if m.processed {
		m.mu.Unlock()
		return ErrAlreadyProcessed
	}
	m.processed = true
	retry := m.retryCount + 1
	m.mu.Unlock()

	if retry > m.queue.config.MaxRetries {
		m.queue.deadLetter(m)
		return nil
	}
	redelivery := &Message[T]{ID: m.ID, payload: m.payload, queue: m.queue, retryCount: retry}
	select {
	case m.queue.messages <- redelivery:
	default:
		m.queue.deadLetter(m)
	}
	return nil
}

// Queue implements an in-memory messaging.Queue.
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
	dlqMu    sync.Mutex
	dlq      []*Message[T]
}

// NewQueue creates a new in-memory queue.
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

// Publish enqueues a copy of t.
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := &Message[T]{ID: uuid.New().String(), payload: *t, queue: q}
	if !q.config.Block {
		select {
		case q.messages <- msg:
			return nil
		default:
			return ErrQueueFull
		}
	}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single message.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the current number of queued messages.
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// DLQSize returns the number of dead-lettered messages.
func (q *Queue[T]) DLQSize() int {
	q.dlqMu.Lock()
	defer q.dlqMu.Unlock()
	return len(q.dlq)
}

func (q *Queue[T]) deadLetter(m *Message[T]) {
	q.dlqMu.Lock()
	q.dlq = append(q.dlq, m)
	q.dlqMu.Unlock()
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
