package taskflow

import "errors"

// ErrNotEligible is returned when the acting user's role may not approve the
// task's priority.
var ErrNotEligible = errors.New("not eligible to approve")
