// Package policy decides which roles may approve tasks of a given priority.
// It is applied by callers before they ask the engine to approve a task.
package policy
