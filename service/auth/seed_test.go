package auth

import (
	"context"
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/viant/taskflow/model"
)

type stubLoader map[string]map[string]interface{}

func (s stubLoader) Load(_ context.Context, URL, _ string) (map[string]interface{}, error) {
	values, ok := s[URL]
	if !ok {
		return nil, errors.New("secret not found: " + URL)
	}
	return values, nil
}

func TestService_Seed(t *testing.T) {
	ctx := context.Background()
	loader := stubLoader{
		"mem://localhost/secrets/root.json":  {"Username": "root", "Password": "changeme"},
		"mem://localhost/secrets/clerk.json": {"username": "clerk", "password": "pass"},
		"mem://localhost/secrets/weak.json":  {"Username": "weak", "Password": "abc"},
	}
	testCases := []struct {
		name      string
		seeds     []Seed
		expectErr error
		expect    map[string]string
	}{
		{
			name: "seeds users",
			seeds: []Seed{
				{Role: model.RoleSenior, URL: "mem://localhost/secrets/root.json"},
				{Role: model.RoleJunior, URL: "mem://localhost/secrets/clerk.json", Key: "blowfish://default"},
			},
			expect: map[string]string{"root": model.RoleSenior, "clerk": model.RoleJunior},
		},
		{
			name: "duplicate seed skipped",
			seeds: []Seed{
				{Role: model.RoleSenior, URL: "mem://localhost/secrets/root.json"},
				{Role: model.RoleJunior, URL: "mem://localhost/secrets/root.json"},
			},
			expect: map[string]string{"root": model.RoleSenior},
		},
		{
			name:      "invalid credential",
			seeds:     []Seed{{Role: model.RoleJunior, URL: "mem://localhost/secrets/weak.json"}},
			expectErr: model.ErrValidation,
		},
		{
			name:  "missing secret",
			seeds: []Seed{{Role: model.RoleJunior, URL: "mem://localhost/secrets/none.json"}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, _ := logtest.NewNullLogger()
			svc := New(WithCredentialLoader(loader), WithCost(bcrypt.MinCost), WithLogger(logger))
			err := svc.Seed(ctx, tc.seeds...)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			if tc.expect == nil {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for username, role := range tc.expect {
				password := "changeme"
				if username == "clerk" {
					password = "pass"
				}
				user, err := svc.Login(ctx, username, password)
				require.NoError(t, err)
				assert.Equal(t, role, user.Role)
			}
		})
	}
}
