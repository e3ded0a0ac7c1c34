package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/viant/taskflow/model"
	"github.com/viant/taskflow/progress"
	"github.com/viant/taskflow/service/approval"
	"github.com/viant/taskflow/service/dao"
)

// Option customises the engine.
type Option func(s *Service)

// WithChain replaces the default Junior, Manager, Senior approval chain.
func WithChain(chain approval.Handler) Option {
	return func(s *Service) { s.chain = chain }
}

// WithLogger sets the logger; defaults to the logrus standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithTaskDAO replaces the in-memory task set.
func WithTaskDAO(tasks dao.Service[string, model.Task]) Option {
	return func(s *Service) { s.tasks = tasks }
}

// WithProgress shares a counters tracker with the caller.
func WithProgress(p *progress.Progress) Option {
	return func(s *Service) { s.progress = p }
}

// WithMaxIDAttempts bounds how many identifiers are drawn before CreateTask
// gives up on finding an unused one.
func WithMaxIDAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxIDAttempts = n
		}
	}
}
