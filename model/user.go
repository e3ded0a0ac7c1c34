package model

import (
	"fmt"
	"strings"
)

// MinPasswordLength is the shortest credential NewUser accepts.
const MinPasswordLength = 4

// Conventional roles. Role is free text; these map onto approval levels.
const (
	RoleJunior  = "Junior"
	RoleManager = "Manager"
	RoleSenior  = "Senior"
)

// User is an acting identity. Password holds an opaque credential, the
// auth service stores a hash there.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

// NewUser validates and builds a user.
func NewUser(username, password, role string) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	if strings.TrimSpace(role) == "" {
		return nil, fmt.Errorf("%w: role cannot be empty", ErrValidation)
	}
	return &User{Username: username, Password: password, Role: role}, nil
}

func (u *User) String() string {
	return u.Username + " (" + u.Role + ")"
}
