// Package notifier connects users and the event feed to task notification
// hubs.
package notifier

import (
	"fmt"
	"io"

	"github.com/viant/taskflow/model"
)

// UserSubscriber prints task events addressed to a user.
type UserSubscriber struct {
	user *model.User
	out  io.Writer
}

// NewUserSubscriber creates a subscriber writing to out.
func NewUserSubscriber(user *model.User, out io.Writer) (*UserSubscriber, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: user cannot be nil", model.ErrValidation)
	}
	return &UserSubscriber{user: user, out: out}, nil
}

// User returns the subscribed user.
func (s *UserSubscriber) User() *model.User {
	return s.user
}

// Receive implements notify.Subscriber.
func (s *UserSubscriber) Receive(event string) {
	fmt.Fprintf(s.out, "Notification for %s (%s): %s\n", s.user.Username, s.user.Role, event)
}
