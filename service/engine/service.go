package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/viant/taskflow/internal/clock"
	"github.com/viant/taskflow/internal/idgen"
	"github.com/viant/taskflow/model"
	"github.com/viant/taskflow/progress"
	"github.com/viant/taskflow/service/approval"
	"github.com/viant/taskflow/service/dao"
	"github.com/viant/taskflow/service/dao/criteria"
	"github.com/viant/taskflow/service/dao/store"
	"github.com/viant/taskflow/service/snapshot"
	"github.com/viant/taskflow/tracing"
)

const defaultMaxIDAttempts = 16

// history pairs a task's snapshot store with the lock that makes
// save, mutate and notify one step.
type history struct {
	mu    sync.Mutex
	store *snapshot.Store
}

// Service is the task engine.
type Service struct {
	mu            sync.RWMutex
	tasks         dao.Service[string, model.Task]
	histories     map[string]*history
	chain         approval.Handler
	logger        logrus.FieldLogger
	progress      *progress.Progress
	maxIDAttempts int
}

// New creates an engine with an empty task set.
func New(options ...Option) *Service {
	ret := &Service{histories: make(map[string]*history)}
	for _, option := range options {
		option(ret)
	}
	if ret.tasks == nil {
		ret.tasks = store.NewMemoryStore[string, model.Task](taskKey,
			store.WithFilter[string, model.Task](matchTask))
	}
	if ret.chain == nil {
		ret.chain = approval.NewChain()
	}
	if ret.logger == nil {
		ret.logger = logrus.StandardLogger()
	}
	if ret.progress == nil {
		ret.progress = progress.New(clock.Now())
	}
	if ret.maxIDAttempts == 0 {
		ret.maxIDAttempts = defaultMaxIDAttempts
	}
	return ret
}

func taskKey(t *model.Task) string { return t.ID }

func matchTask(t *model.Task, parameters []*dao.Parameter) bool {
	return criteria.MatchStatus(t.Status(), parameters)
}

// CreateTask validates the request and registers a new pending task
// together with an empty snapshot store.
func (s *Service) CreateTask(ctx context.Context, description string, priority model.Priority, creator *model.User) (task *model.Task, err error) {
	ctx, span := tracing.StartSpan(ctx, "engine.createTask")
	defer func() { tracing.EndSpan(span, err) }()

	if creator == nil {
		return nil, fmt.Errorf("%w: creator cannot be nil", model.ErrValidation)
	}
	if err = model.ValidateTask(description, priority); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}
	if task, err = model.NewTaskWithID(id, description, priority); err != nil {
		return nil, err
	}
	if err = s.tasks.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to register task %s: %w", id, err)
	}
	s.histories[id] = &history{store: snapshot.New()}

	span.WithAttributes(map[string]string{"task.id": id, "creator": creator.Username})
	s.progress.Update(progress.Delta{Created: 1})
	s.logger.WithFields(logrus.Fields{
		"task_id":  id,
		"priority": int(priority),
		"creator":  creator.Username,
	}).Info("task created")
	return task, nil
}

func (s *Service) nextID(ctx context.Context) (string, error) {
	for i := 0; i < s.maxIDAttempts; i++ {
		id := idgen.New()
		_, err := s.tasks.Load(ctx, id)
		if errors.Is(err, dao.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("failed to allocate unique task id after %d attempts", s.maxIDAttempts)
}

// ProcessTask saves the current status and then either routes the task
// through the approval chain or rejects it, with reason when one is given.
func (s *Service) ProcessTask(ctx context.Context, task *model.Task, approve bool, reason string) (decision *approval.Decision, err error) {
	ctx, span := tracing.StartSpan(ctx, "engine.processTask")
	defer func() { tracing.EndSpan(span, err) }()

	h, err := s.historyOf(ctx, task)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err = h.store.Save(task.Status()); err != nil {
		return nil, err
	}
	if approve {
		decision = s.chain.Handle(task)
	} else {
		reason = strings.TrimSpace(reason)
		status := model.RejectedWith(reason)
		if err = task.SetStatus(status); err != nil {
			return nil, err
		}
		decision = &approval.Decision{TaskID: task.ID, Reason: reason, Status: status, DecidedAt: clock.Now()}
	}

	if decision.Approved {
		s.progress.Update(progress.Delta{Approved: 1})
	} else {
		s.progress.Update(progress.Delta{Rejected: 1})
	}
	span.WithAttributes(map[string]string{"task.id": task.ID, "status": decision.Status})
	s.logger.WithFields(logrus.Fields{
		"task_id":  task.ID,
		"approved": decision.Approved,
		"approver": decision.Approver,
		"status":   decision.Status,
	}).Info("task processed")
	return decision, nil
}

// RollbackTask pops the last saved status and applies it to the task.
// snapshot.ErrEmptyHistory is returned when nothing was saved.
func (s *Service) RollbackTask(ctx context.Context, task *model.Task) (status string, err error) {
	ctx, span := tracing.StartSpan(ctx, "engine.rollbackTask")
	defer func() { tracing.EndSpan(span, err) }()

	h, err := s.historyOf(ctx, task)
	if err != nil {
		return "", err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	snap, err := h.store.Restore()
	if err != nil {
		return "", fmt.Errorf("task %s: %w", task.ID, err)
	}
	status = snap.Status
	if err = task.SetStatus(status); err != nil {
		return "", err
	}

	s.progress.Update(progress.Delta{RolledBack: 1})
	span.WithAttributes(map[string]string{"task.id": task.ID, "status": status})
	s.logger.WithFields(logrus.Fields{"task_id": task.ID, "status": status, "taken_at": snap.TakenAt}).Info("task rolled back")
	return status, nil
}

// Tasks returns registered tasks in creation order, optionally narrowed by
// dao.StatusParameter.
func (s *Service) Tasks(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Task, error) {
	return s.tasks.List(ctx, parameters...)
}

// Task returns the task with id.
func (s *Service) Task(ctx context.Context, id string) (*model.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: task id cannot be empty", ErrTaskNotFound)
	}
	task, err := s.tasks.Load(ctx, id)
	if errors.Is(err, dao.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return task, err
}

// History returns how many rollbacks are currently available for id.
func (s *Service) History(ctx context.Context, id string) (int, error) {
	task, err := s.Task(ctx, id)
	if err != nil {
		return 0, err
	}
	h, err := s.historyOf(ctx, task)
	if err != nil {
		return 0, err
	}
	return h.store.Len(), nil
}

// Progress returns a copy of the engine counters.
func (s *Service) Progress() progress.Counters {
	return s.progress.Snapshot()
}

// historyOf resolves the snapshot store of a task created by this engine.
func (s *Service) historyOf(ctx context.Context, task *model.Task) (*history, error) {
	if task == nil {
		return nil, fmt.Errorf("%w: task cannot be nil", model.ErrValidation)
	}
	s.mu.RLock()
	h, ok := s.histories[task.ID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, task.ID)
	}
	if registered, err := s.tasks.Load(ctx, task.ID); err != nil || registered != task {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, task.ID)
	}
	return h, nil
}
