package model

import "strings"

// Status values produced by the engine. Status is free text; these are the
// values the engine itself writes.
const (
	StatusPending    = "Pending"
	StatusRejected   = "Rejected"
	StatusNoApprover = "Rejected: No suitable approver"

	approvedPrefix = "Approved by "
	eventInfix     = " status updated to: "
	rejectedPrefix = "Rejected: "
)

// ApprovedBy returns the status recorded when label approves a task.
func ApprovedBy(label string) string {
	return approvedPrefix + label
}

// RejectedWith returns the rejection status, with reason appended when present.
func RejectedWith(reason string) string {
	if reason == "" {
		return StatusRejected
	}
	return rejectedPrefix + reason
}

// StatusEvent formats the notification text for a status change.
func StatusEvent(taskID, status string) string {
	return "Task " + taskID + eventInfix + status
}

// StatusOf extracts the status carried by an event produced by StatusEvent
// for taskID.
func StatusOf(taskID, event string) (string, bool) {
	prefix := "Task " + taskID + eventInfix
	if !strings.HasPrefix(event, prefix) {
		return "", false
	}
	return event[len(prefix):], true
}
