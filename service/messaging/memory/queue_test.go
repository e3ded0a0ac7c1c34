package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	TaskID string
	Status string
}

func TestQueue_PublishConsume(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[payload](DefaultConfig())

	in := payload{TaskID: "abc", Status: "Rejected"}
	require.NoError(t, queue.Publish(ctx, &in))
	in.Status = "mutated after publish"
	assert.Equal(t, 1, queue.Size())

	msg, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload{TaskID: "abc", Status: "Rejected"}, *msg.T())
	assert.Equal(t, 0, queue.Size())

	assert.NoError(t, msg.Ack())
	assert.ErrorIs(t, msg.Ack(), ErrAlreadyProcessed)
	assert.ErrorIs(t, msg.Nack(nil), ErrAlreadyProcessed)
}

func TestQueue_NackRetriesThenDeadLetters(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[payload](Config{MaxRetries: 2, QueueBuffer: 4})
	require.NoError(t, queue.Publish(ctx, &payload{TaskID: "x"}))

	for i := 0; i < 3; i++ {
		msg, err := queue.Consume(ctx)
		require.NoError(t, err)
		require.NoError(t, msg.Nack(errors.New("fail")))
	}
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueue_Full(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[payload](Config{QueueBuffer: 1})
	require.NoError(t, queue.Publish(ctx, &payload{}))
	assert.ErrorIs(t, queue.Publish(ctx, &payload{}), ErrQueueFull)

	blocking := NewQueue[payload](Config{QueueBuffer: 1, Block: true})
	require.NoError(t, blocking.Publish(ctx, &payload{}))
	timeoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, blocking.Publish(timeoutCtx, &payload{}), context.DeadlineExceeded)
}

func TestQueue_ConsumeCancelled(t *testing.T) {
	queue := NewQueue[payload](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
