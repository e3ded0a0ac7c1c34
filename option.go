package taskflow

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/viant/taskflow/model"
	"github.com/viant/taskflow/policy"
	"github.com/viant/taskflow/progress"
	"github.com/viant/taskflow/service/auth"
	"github.com/viant/taskflow/service/dao"
)

// Option customises the service.
type Option func(s *Service)

// WithConfig sets the configuration; nil keeps DefaultConfig.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger sets the logger shared by all collaborators.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithOutput sets where user notifications are written.
func WithOutput(out io.Writer) Option {
	return func(s *Service) { s.out = out }
}

// WithPolicy overrides the policy derived from the configuration.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithTaskDAO sets the task store used by the engine.
func WithTaskDAO(tasks dao.Service[string, model.Task]) Option {
	return func(s *Service) { s.taskDAO = tasks }
}

// WithCredentialLoader replaces the loader used for configured seed users.
func WithCredentialLoader(loader auth.CredentialLoader) Option {
	return func(s *Service) { s.credentialLoader = loader }
}

// WithEventHandler enables the status-change feed and delivers every event
// to handler from a background listener.
func WithEventHandler(handler EventHandler) Option {
	return func(s *Service) { s.eventHandler = handler }
}

// WithProgressListener registers fn to receive the engine counters after
// every change.
func WithProgressListener(fn func(progress.Counters)) Option {
	return func(s *Service) { s.progressListener = fn }
}
