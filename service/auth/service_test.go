package auth

import (
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/viant/taskflow/model"
)

func newTestService() *Service {
	logger, _ := logtest.NewNullLogger()
	return New(WithCost(bcrypt.MinCost), WithLogger(logger))
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name        string
		username    string
		password    string
		role        string
		expectError error
		message     string
	}{
		{name: "valid", username: "alice", password: "pass", role: "Junior"},
		{name: "trimmed", username: " bob ", password: "secret", role: " Senior "},
		{name: "empty username", username: "  ", password: "pass", role: "Junior", expectError: model.ErrValidation, message: "username cannot be empty"},
		{name: "short password", username: "carol", password: "abc", role: "Junior", expectError: model.ErrValidation, message: "password must be at least 4 characters"},
		{name: "empty role", username: "dave", password: "pass", role: "", expectError: model.ErrValidation, message: "role cannot be empty"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService()
			user, err := svc.Register(ctx, tc.username, tc.password, tc.role)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Contains(t, err.Error(), tc.message)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, tc.password, user.Password)
			assert.NotEmpty(t, user.Username)
			assert.NotContains(t, user.Username, " ")
		})
	}
}

func TestService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_, err := svc.Register(ctx, "alice", "pass", "Junior")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "alice", "other", "Senior")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	registered, err := svc.Register(ctx, "alice", "pass", "Manager")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "alice", "pass")
	require.NoError(t, err)
	assert.Same(t, registered, user)
	assert.Equal(t, "Manager", user.Role)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
