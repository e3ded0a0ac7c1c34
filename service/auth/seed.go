package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	"github.com/viant/toolbox"
)

// Seed points at an encrypted basic credential (username and password)
// registered with Role at startup.
type Seed struct {
	Role string `json:"role" yaml:"role" validate:"required"`
	URL  string `json:"url" yaml:"url" validate:"required"`
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`
}

// CredentialLoader reveals the secret stored at URL as a field map.
type CredentialLoader interface {
	Load(ctx context.Context, URL, key string) (map[string]interface{}, error)
}

// WithCredentialLoader replaces the scy backed loader.
func WithCredentialLoader(loader CredentialLoader) Option {
	return func(s *Service) { s.loader = loader }
}

type scyLoader struct {
	service *scy.Service
}

func (l *scyLoader) Load(ctx context.Context, URL, key string) (map[string]interface{}, error) {
	target, err := cred.TargetType("basic")
	if err != nil {
		return nil, err
	}
	secret, err := l.service.Load(ctx, scy.NewResource(target, URL, key))
	if err != nil {
		return nil, fmt.Errorf("failed to load secret from %s: %w", URL, err)
	}
	if secret.IsPlain || secret.Target == nil {
		return nil, fmt.Errorf("secret %s is not a basic credential", URL)
	}
	aMap := map[string]interface{}{}
	if err = toolbox.DefaultConverter.AssignConverted(&aMap, secret.Target); err != nil {
		return nil, fmt.Errorf("failed to convert secret %s: %w", URL, err)
	}
	return aMap, nil
}

// Seed registers a user for every seed; existing usernames are skipped.
func (s *Service) Seed(ctx context.Context, seeds ...Seed) error {
	for _, seed := range seeds {
		values, err := s.loader.Load(ctx, seed.URL, seed.Key)
		if err != nil {
			return err
		}
		username, password := field(values, "username"), field(values, "password")
		_, err = s.Register(ctx, username, password, seed.Role)
		switch {
		case err == nil:
		case errors.Is(err, ErrUserExists):
			s.logger.WithField("username", username).Debug("seed user already registered")
		default:
			return fmt.Errorf("failed to seed %s: %w", seed.URL, err)
		}
	}
	return nil
}

func field(values map[string]interface{}, name string) string {
	for k, v := range values {
		if strings.EqualFold(k, name) {
			return toolbox.AsString(v)
		}
	}
	return ""
}
