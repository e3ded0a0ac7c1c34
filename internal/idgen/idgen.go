package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Size is the length of identifiers returned by New.
const Size = 8

// NewFunc returns a short opaque identifier. Override in tests for determinism.
var NewFunc = func() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:Size]
}

func New() string { return NewFunc() }
