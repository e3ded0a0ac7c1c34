package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Handler processes one event. A returned error, or a panic, nacks the event
// so the queue can redeliver or dead-letter it.
type Handler[T any] func(event *Event[T]) error

// Listener drains a publisher on a background goroutine and hands every
// event to handler.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   Handler[T]
	logger    logrus.FieldLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewListener creates a stopped listener. A nil logger falls back to the
// logrus standard logger.
func NewListener[T any](publisher *Publisher[T], handler Handler[T], logger logrus.FieldLogger) *Listener[T] {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Listener[T]{publisher: publisher, handler: handler, logger: logger}
}

// Start begins consuming; calling it on a running listener is a no-op.
func (l *Listener[T]) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	go l.run(ctx, l.done)
}

func (l *Listener[T]) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		msg, err := l.publisher.Consume(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			l.logger.WithError(err).Warn("failed to consume event")
			continue
		}
		if msg == nil {
			continue
		}
		if err = l.handle(msg.T()); err != nil {
			l.logger.WithError(err).Warn("event handler failed")
			if nackErr := msg.Nack(err); nackErr != nil {
				l.logger.WithError(nackErr).Warn("failed to nack event")
			}
			continue
		}
		if err = msg.Ack(); err != nil {
			l.logger.WithError(err).Warn("failed to ack event")
		}
	}
}

func (l *Listener[T]) handle(event *Event[T]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panic: %v", r)
		}
	}()
	return l.handler(event)
}

// Stop cancels consumption and waits for the goroutine to exit.
func (l *Listener[T]) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
