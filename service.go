package taskflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/viant/taskflow/model"
	"github.com/viant/taskflow/policy"
	"github.com/viant/taskflow/progress"
	"github.com/viant/taskflow/service/approval"
	"github.com/viant/taskflow/service/auth"
	"github.com/viant/taskflow/service/dao"
	"github.com/viant/taskflow/service/engine"
	"github.com/viant/taskflow/service/event"
	"github.com/viant/taskflow/service/messaging/memory"
	"github.com/viant/taskflow/service/notifier"
	"github.com/viant/taskflow/tracing"
)

// EventHandler receives status-change events from the feed. A returned error
// requeues the event until the retry budget is spent, after which it is
// dead-lettered.
type EventHandler func(evt *event.Event[event.StatusChange]) error

// Service wires the task engine with registration, the approval policy,
// user notifications and the status-change feed.
type Service struct {
	config           *Config
	logger           logrus.FieldLogger
	out              io.Writer
	policy           *policy.Policy
	taskDAO          dao.Service[string, model.Task]
	eventHandler     EventHandler
	credentialLoader auth.CredentialLoader
	progressListener func(progress.Counters)

	engine    *engine.Service
	auth      *auth.Service
	notifier  *notifier.Service
	queue     *memory.Queue[event.Event[event.StatusChange]]
	publisher *event.Publisher[event.StatusChange]
	listener  *event.Listener[event.StatusChange]
}

// New creates a service. The configuration is validated before anything is
// wired.
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(ret)
	}
	if err := ret.config.Validate(); err != nil {
		return nil, err
	}
	ret.init()
	if err := ret.auth.Seed(context.Background(), ret.config.Auth.Seeds...); err != nil {
		ret.Close()
		return nil, err
	}
	return ret, nil
}

func (s *Service) init() {
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.policy == nil {
		s.policy = policy.FromConfig(&s.config.Policy)
	}
	if tc := s.config.Tracing; tc.Enabled {
		if err := tracing.Init(tc.ServiceName, tc.ServiceVersion, tc.OutputFile); err != nil {
			s.logger.WithError(err).Warn("failed to initialise tracing")
		}
	}

	engineOptions := []engine.Option{
		engine.WithChain(approval.NewChain(s.config.Approval.Levels...)),
		engine.WithLogger(s.logger),
	}
	if s.taskDAO != nil {
		engineOptions = append(engineOptions, engine.WithTaskDAO(s.taskDAO))
	}
	if s.progressListener != nil {
		tracker := progress.New(time.Now())
		tracker.OnChange(s.progressListener)
		engineOptions = append(engineOptions, engine.WithProgress(tracker))
	}
	s.engine = engine.New(engineOptions...)
	authOptions := []auth.Option{auth.WithCost(s.config.Auth.BcryptCost), auth.WithLogger(s.logger)}
	if s.credentialLoader != nil {
		authOptions = append(authOptions, auth.WithCredentialLoader(s.credentialLoader))
	}
	s.auth = auth.New(authOptions...)

	notifierOptions := []notifier.Option{notifier.WithOutput(s.out), notifier.WithLogger(s.logger)}
	if s.config.Events.Enabled || s.eventHandler != nil {
		s.queue = memory.NewQueue[event.Event[event.StatusChange]](memory.Config{
			MaxRetries:  s.config.Events.MaxRetries,
			QueueBuffer: s.config.Events.QueueBuffer,
		})
		s.publisher = event.NewPublisher[event.StatusChange](s.queue)
		notifierOptions = append(notifierOptions, notifier.WithPublisher(s.publisher))
	}
	s.notifier = notifier.New(notifierOptions...)

	if s.publisher != nil {
		handler := s.eventHandler
		if handler == nil {
			handler = s.logStatusChange
		}
		s.listener = event.NewListener[event.StatusChange](s.publisher, event.Handler[event.StatusChange](handler), s.logger)
		s.listener.Start(context.Background())
	}
}

// logStatusChange drains the feed when no handler was supplied.
func (s *Service) logStatusChange(evt *event.Event[event.StatusChange]) error {
	s.logger.WithFields(logrus.Fields{
		"task_id":    evt.Context.TaskID,
		"event_type": evt.Context.EventType,
		"status":     evt.Data.Status,
	}).Debug("status changed")
	return nil
}

// Close stops the event listener and flushes tracing, if enabled.
func (s *Service) Close() {
	if s.listener != nil {
		s.listener.Stop()
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Shutdown(context.Background()); err != nil {
			s.logger.WithError(err).Warn("failed to shut down tracing")
		}
	}
}

// Config returns the effective configuration.
func (s *Service) Config() *Config { return s.config }

// Policy returns the approval policy.
func (s *Service) Policy() *policy.Policy { return s.policy }

// Engine exposes the underlying task engine.
func (s *Service) Engine() *engine.Service { return s.engine }

// Publisher returns the status-change publisher, nil when the feed is off.
func (s *Service) Publisher() *event.Publisher[event.StatusChange] { return s.publisher }

// Register creates a user.
func (s *Service) Register(ctx context.Context, username, password, role string) (*model.User, error) {
	return s.auth.Register(ctx, username, password, role)
}

// Login verifies credentials.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	return s.auth.Login(ctx, username, password)
}

// CreateTask creates a task and subscribes its creator to it.
func (s *Service) CreateTask(ctx context.Context, creator *model.User, description string, priority model.Priority) (*model.Task, error) {
	task, err := s.engine.CreateTask(ctx, description, priority, creator)
	if err != nil {
		return nil, err
	}
	if _, err = s.notifier.AttachObserver(task, creator); err != nil {
		return nil, err
	}
	s.notifier.Forward(context.WithoutCancel(ctx), task)
	return task, nil
}

// Watch subscribes user to the task with the given id.
func (s *Service) Watch(ctx context.Context, user *model.User, taskID string) (*model.Task, error) {
	task, err := s.engine.Task(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err = s.notifier.AttachObserver(task, user); err != nil {
		return nil, err
	}
	return task, nil
}

// Unwatch removes user's subscription to the task with the given id.
func (s *Service) Unwatch(ctx context.Context, user *model.User, taskID string) error {
	task, err := s.engine.Task(ctx, taskID)
	if err != nil {
		return err
	}
	s.notifier.DetachObserver(task, user)
	return nil
}

// ProcessTask approves or rejects the task with the given id on behalf of
// actor. Approval requires the policy to allow actor's role for the task's
// priority; anyone may reject. A policy attached to ctx with
// policy.WithPolicy takes precedence over the service policy.
func (s *Service) ProcessTask(ctx context.Context, actor *model.User, taskID string, approve bool, reason string) (*approval.Decision, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: actor cannot be nil", model.ErrValidation)
	}
	task, err := s.engine.Task(ctx, taskID)
	if err != nil {
		return nil, err
	}
	p := policy.FromContext(ctx)
	if p == nil {
		p = s.policy
	}
	if approve && !p.CanApprove(actor.Role, int(task.Priority())) {
		err = fmt.Errorf("%w: user role %s cannot approve priority %d", ErrNotEligible, actor.Role, task.Priority())
		if label, ok := approval.LabelFor(s.config.Approval.Levels, task.Priority()); ok {
			err = fmt.Errorf("%w (approver: %s)", err, label)
		}
		return nil, err
	}
	decision, err := s.engine.ProcessTask(ctx, task, approve, reason)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"task_id": task.ID, "actor": actor.Username, "status": decision.Status}).Debug("decision applied")
	return decision, nil
}

// RollbackTask restores the previous status of the task with the given id.
func (s *Service) RollbackTask(ctx context.Context, taskID string) (*model.Task, error) {
	task, err := s.engine.Task(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err = s.engine.RollbackTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// History returns how many rollbacks remain for the task with the given id.
func (s *Service) History(ctx context.Context, taskID string) (int, error) {
	return s.engine.History(ctx, taskID)
}

// ListTasks returns tasks in creation order, optionally only those with one
// of the given statuses.
func (s *Service) ListTasks(ctx context.Context, statuses ...string) ([]*model.Task, error) {
	var parameters []*dao.Parameter
	if len(statuses) > 0 {
		trimmed := make([]string, 0, len(statuses))
		for _, status := range statuses {
			if status = strings.TrimSpace(status); status != "" {
				trimmed = append(trimmed, status)
			}
		}
		if len(trimmed) > 0 {
			parameters = append(parameters, dao.StatusParameter(trimmed...))
		}
	}
	return s.engine.Tasks(ctx, parameters...)
}

// Task returns the task with the given id.
func (s *Service) Task(ctx context.Context, taskID string) (*model.Task, error) {
	return s.engine.Task(ctx, taskID)
}

// Progress returns engine counters.
func (s *Service) Progress() progress.Counters {
	return s.engine.Progress()
}
