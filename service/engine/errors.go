package engine

import "errors"

// ErrTaskNotFound is returned when an operation references a task this
// engine did not create.
var ErrTaskNotFound = errors.New("task not found")
