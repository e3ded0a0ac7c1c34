package policy

import (
	"context"
	"strings"
)

// Approval modes.
const (
	ModeStrict = "strict" // role must be eligible for the priority (default)
	ModeAuto   = "auto"   // any role approves
	ModeDeny   = "deny"   // nobody approves
)

// Policy maps roles to the priorities they may approve.
//
// A nil *Policy behaves like DefaultPolicy.
type Policy struct {
	Mode        string
	Eligibility map[string][]int // role (case-insensitive) -> priorities
}

// DefaultPolicy returns strict mode with Junior, Manager and Senior mapped to
// priorities 1, 2 and 3.
func DefaultPolicy() *Policy {
	return &Policy{
		Mode: ModeStrict,
		Eligibility: map[string][]int{
			"junior":  {1},
			"manager": {2},
			"senior":  {3},
		},
	}
}

// Config is the serialisable form of a Policy.
type Config struct {
	Mode        string           `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=strict auto deny"`
	Eligibility map[string][]int `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{Mode: p.Mode, Eligibility: cloneEligibility(p.Eligibility)}
}

// FromConfig converts a Config back to a Policy. Missing fields fall back to
// DefaultPolicy.
func FromConfig(c *Config) *Policy {
	ret := DefaultPolicy()
	if c == nil {
		return ret
	}
	if c.Mode != "" {
		ret.Mode = strings.ToLower(c.Mode)
	}
	if len(c.Eligibility) > 0 {
		ret.Eligibility = cloneEligibility(c.Eligibility)
	}
	return ret
}

// CanApprove reports whether role may approve a task with the given priority.
func (p *Policy) CanApprove(role string, priority int) bool {
	if p == nil {
		p = DefaultPolicy()
	}
	switch strings.ToLower(p.Mode) {
	case ModeAuto:
		return true
	case ModeDeny:
		return false
	}
	normalized := strings.ToLower(strings.TrimSpace(role))
	for candidate, priorities := range p.Eligibility {
		if strings.ToLower(candidate) != normalized {
			continue
		}
		for _, allowed := range priorities {
			if allowed == priority {
				return true
			}
		}
	}
	return false
}

func cloneEligibility(src map[string][]int) map[string][]int {
	if src == nil {
		return nil
	}
	ret := make(map[string][]int, len(src))
	for role, priorities := range src {
		ret[role] = append([]int(nil), priorities...)
	}
	return ret
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy, nil when absent.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
