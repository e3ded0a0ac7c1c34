package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/viant/taskflow/internal/idgen"
	"github.com/viant/taskflow/service/notify"
)

// Task is a work item routed through the approval chain.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`

	priority Priority
	mu       sync.RWMutex
	status   string
	hub      *notify.Hub
}

// NewTask creates a pending task with a fresh identifier.
func NewTask(description string, priority Priority) (*Task, error) {
	return NewTaskWithID(idgen.New(), description, priority)
}

// NewTaskWithID creates a pending task with the supplied identifier.
func NewTaskWithID(id, description string, priority Priority) (*Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: task id cannot be empty", ErrValidation)
	}
	if err := ValidateTask(description, priority); err != nil {
		return nil, err
	}
	return &Task{
		ID:          id,
		Description: description,
		priority:    priority,
		status:      StatusPending,
		hub:         notify.NewHub(),
	}, nil
}

// ValidateTask checks the caller supplied task fields.
func ValidateTask(description string, priority Priority) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: task description cannot be empty", ErrValidation)
	}
	if !priority.Valid() {
		return fmt.Errorf("%w: priority must be between %d and %d, got %d",
			ErrValidation, PriorityLow, PriorityHigh, priority)
	}
	return nil
}

// Priority returns the task priority, fixed at creation.
func (t *Task) Priority() Priority {
	return t.priority
}

// Status returns the current status.
func (t *Task) Status() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// SetStatus replaces the status and notifies every subscriber. It is the
// only way a task changes state.
func (t *Task) SetStatus(status string) error {
	if strings.TrimSpace(status) == "" {
		return fmt.Errorf("%w: status cannot be empty", ErrValidation)
	}
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
	t.hub.Broadcast(StatusEvent(t.ID, status))
	return nil
}

// Attach subscribes s to status changes; attaching twice is a no-op.
func (t *Task) Attach(s notify.Subscriber) {
	t.hub.Attach(s)
}

// Detach unsubscribes s.
func (t *Task) Detach(s notify.Subscriber) {
	t.hub.Detach(s)
}

// Subscribers returns the current subscribers in attachment order.
func (t *Task) Subscribers() []notify.Subscriber {
	return t.hub.Subscribers()
}

func (t *Task) String() string {
	return fmt.Sprintf("ID: %s, Description: %s, Priority: %d, Status: %s",
		t.ID, t.Description, t.priority, t.Status())
}
