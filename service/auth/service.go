// Package auth registers users and verifies their credentials. Passwords
// are kept as bcrypt hashes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/viant/scy"
	"golang.org/x/crypto/bcrypt"

	"github.com/viant/taskflow/model"
)

// Registration is the validated input of Register.
type Registration struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=4"`
	Role     string `validate:"required"`
}

// Service keeps registered users in memory.
type Service struct {
	mu       sync.RWMutex
	users    map[string]*model.User
	validate *validator.Validate
	cost     int
	logger   logrus.FieldLogger
	loader   CredentialLoader
}

// Option customises the service.
type Option func(s *Service)

// WithCost sets the bcrypt cost.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates an empty user registry.
func New(options ...Option) *Service {
	ret := &Service{
		users:    make(map[string]*model.User),
		validate: validator.New(),
		cost:     bcrypt.DefaultCost,
	}
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = logrus.StandardLogger()
	}
	if ret.loader == nil {
		ret.loader = &scyLoader{service: scy.New()}
	}
	return ret
}

// Register creates a user. Username and role are trimmed.
func (s *Service) Register(_ context.Context, username, password, role string) (*model.User, error) {
	req := Registration{
		Username: strings.TrimSpace(username),
		Password: password,
		Role:     strings.TrimSpace(role),
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrValidation, describe(err))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user, err := model.NewUser(req.Username, string(hash), req.Role)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, user.Username)
	}
	s.users[user.Username] = user
	s.logger.WithFields(logrus.Fields{"username": user.Username, "role": user.Role}).Info("user registered")
	return user, nil
}

// Login returns the user whose password matches.
func (s *Service) Login(_ context.Context, username, password string) (*model.User, error) {
	s.mu.RLock()
	user, ok := s.users[strings.TrimSpace(username)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	s.logger.WithField("username", user.Username).Info("user logged in")
	return user, nil
}

// describe turns validator errors into the messages shown to operators.
func describe(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err.Error()
	}
	fe := fieldErrors[0]
	switch {
	case fe.Field() == "Password" && fe.Tag() == "min":
		return fmt.Sprintf("password must be at least %s characters", fe.Param())
	default:
		return strings.ToLower(fe.Field()) + " cannot be empty"
	}
}
