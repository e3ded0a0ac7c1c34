package taskflow

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs/storage"
	"golang.org/x/crypto/bcrypt"

	"github.com/viant/taskflow/policy"
	"github.com/viant/taskflow/service/approval"
	"github.com/viant/taskflow/service/auth"
	"github.com/viant/taskflow/service/meta"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from YAML or JSON; LoadConfig starts from DefaultConfig so
// omitted sections keep their defaults.
type Config struct {
	Approval ApprovalConfig `json:"approval" yaml:"approval"`
	Policy   policy.Config  `json:"policy" yaml:"policy"`
	Auth     AuthConfig     `json:"auth" yaml:"auth"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Tracing  TracingConfig  `json:"tracing" yaml:"tracing"`
	Events   EventsConfig   `json:"events" yaml:"events"`
}

type ApprovalConfig struct {
	Levels []approval.Level `json:"levels" yaml:"levels" validate:"required,min=1,dive"`
}

type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost" validate:"min=4,max=31"`
	// Seeds are encrypted credentials registered when the service starts.
	Seeds []auth.Seed `json:"seeds,omitempty" yaml:"seeds,omitempty" validate:"dive"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName" validate:"required_if=Enabled true"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	OutputFile     string `json:"outputFile" yaml:"outputFile"`
}

type EventsConfig struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	QueueBuffer int  `json:"queueBuffer" yaml:"queueBuffer" validate:"min=1"`
	MaxRetries  int  `json:"maxRetries" yaml:"maxRetries" validate:"min=0"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Approval: ApprovalConfig{Levels: approval.DefaultLevels()},
		Policy:   *policy.ToConfig(policy.DefaultPolicy()),
		Auth:     AuthConfig{BcryptCost: bcrypt.DefaultCost},
		Log:      LogConfig{Level: logrus.InfoLevel.String()},
		Tracing:  TracingConfig{ServiceName: "taskflow", ServiceVersion: "dev"},
		Events:   EventsConfig{QueueBuffer: 1000, MaxRetries: 3},
	}
}

var validate = validator.New()

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	seen := make(map[int]string, len(c.Approval.Levels))
	for _, level := range c.Approval.Levels {
		if label, ok := seen[int(level.Priority)]; ok {
			return fmt.Errorf("invalid config: approval priority %d assigned to both %v and %v", level.Priority, label, level.Label)
		}
		seen[int(level.Priority)] = level.Label
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// LoadConfig reads a YAML or JSON config from any afs URL, overlays it on
// DefaultConfig and validates the result.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	ret := DefaultConfig()
	ret.Approval.Levels = nil
	ret.Policy.Eligibility = nil
	if err := meta.New(nil, "", options...).Load(ctx, URL, ret); err != nil {
		return nil, err
	}
	if len(ret.Approval.Levels) == 0 {
		ret.Approval.Levels = approval.DefaultLevels()
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
