package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/viant/taskflow/model"
	"github.com/viant/taskflow/service/event"
	"github.com/viant/taskflow/service/notify"
)

// Service attaches users and the event feed to tasks.
type Service struct {
	out       io.Writer
	publisher *event.Publisher[event.StatusChange]
	logger    logrus.FieldLogger

	mu       sync.Mutex
	attached map[string]map[string]*UserSubscriber
	forwards map[string]notify.Subscriber
}

// Option customises the notifier.
type Option func(s *Service)

// WithOutput sets where user notifications are written; defaults to stdout.
func WithOutput(out io.Writer) Option {
	return func(s *Service) { s.out = out }
}

// WithPublisher enables event forwarding.
func WithPublisher(publisher *event.Publisher[event.StatusChange]) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates a notifier.
func New(options ...Option) *Service {
	ret := &Service{
		attached: make(map[string]map[string]*UserSubscriber),
		forwards: make(map[string]notify.Subscriber),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.out == nil {
		ret.out = os.Stdout
	}
	if ret.logger == nil {
		ret.logger = logrus.StandardLogger()
	}
	return ret
}

// AttachObserver subscribes user to task. Attaching the same user again
// returns the existing subscriber.
func (s *Service) AttachObserver(task *model.Task, user *model.User) (*UserSubscriber, error) {
	if task == nil || user == nil {
		return nil, fmt.Errorf("%w: task or user cannot be nil", model.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser, ok := s.attached[task.ID]
	if !ok {
		byUser = make(map[string]*UserSubscriber)
		s.attached[task.ID] = byUser
	}
	if existing, ok := byUser[user.Username]; ok {
		return existing, nil
	}
	subscriber, err := NewUserSubscriber(user, s.out)
	if err != nil {
		return nil, err
	}
	byUser[user.Username] = subscriber
	task.Attach(subscriber)
	s.logger.WithFields(logrus.Fields{"task_id": task.ID, "username": user.Username}).Info("observer attached")
	return subscriber, nil
}

// DetachObserver removes user's subscription to task, if any.
func (s *Service) DetachObserver(task *model.Task, user *model.User) {
	if task == nil || user == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	subscriber, ok := s.attached[task.ID][user.Username]
	if !ok {
		return
	}
	task.Detach(subscriber)
	delete(s.attached[task.ID], user.Username)
}

// Forward publishes every status change of task to the event feed. It is a
// no-op without a publisher or when task is already forwarded.
func (s *Service) Forward(ctx context.Context, task *model.Task) {
	if s.publisher == nil || task == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forwards[task.ID]; ok {
		return
	}
	subscriber := notify.Func(func(message string) {
		status, ok := model.StatusOf(task.ID, message)
		if !ok {
			status = task.Status()
		}
		evt := event.NewEvent(&event.Context{TaskID: task.ID, EventType: event.TypeStatusChanged},
			event.StatusChange{Status: status, Message: message})
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.WithError(err).WithField("task_id", task.ID).Warn("failed to publish status change")
		}
	})
	s.forwards[task.ID] = subscriber
	task.Attach(subscriber)
}
