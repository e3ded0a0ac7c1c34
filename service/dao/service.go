// Package dao defines the generic persistence contract used for the task set.
package dao

import (
	"context"
)

// Service stores entities of type T keyed by K.
type Service[K comparable, T any] interface {
	// Save inserts or replaces t.
	Save(ctx context.Context, t *T) error

	// Load returns ErrNotFound when id is unknown.
	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	// List returns entities in insertion order, narrowed by parameters.
	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
