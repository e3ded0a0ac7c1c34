// Package approval implements priority-based approval routing. Approvers are
// linked in ascending priority order; a task is approved by the first
// approver bound to its priority, otherwise it falls through to the end of
// the chain and is rejected.
package approval
