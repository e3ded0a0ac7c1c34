// Package event publishes typed task events onto a messaging queue and
// delivers them to listeners.
package event

import (
	"time"

	"github.com/viant/taskflow/internal/clock"
)

// Event types.
const (
	TypeStatusChanged = "task.statusChanged"
)

// Context identifies what an event is about.
type Context struct {
	TaskID    string `json:"taskID"`
	EventType string `json:"eventType"`
	Actor     string `json:"actor,omitempty"`
}

// Event wraps a payload with its context.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// StatusChange is the payload of TypeStatusChanged events.
type StatusChange struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewEvent builds an event stamped with the current time.
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
