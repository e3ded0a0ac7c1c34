package model

import "errors"

// ErrValidation is returned for malformed input: blank text, out-of-range
// priority or a missing identity. It is always recoverable by the caller and
// the rejected operation leaves no side effects.
var ErrValidation = errors.New("validation failed")
