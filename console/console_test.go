package console

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/viant/taskflow"
	"github.com/viant/taskflow/internal/idgen"
)

func newTestConsole(t *testing.T, script string) (*Console, *bytes.Buffer) {
	t.Helper()
	counter := 0
	prev := idgen.NewFunc
	t.Cleanup(func() { idgen.NewFunc = prev })
	idgen.NewFunc = func() string {
		counter++
		return fmt.Sprintf("task%04d", counter)
	}

	logger, _ := logtest.NewNullLogger()
	cfg := taskflow.DefaultConfig()
	cfg.Auth.BcryptCost = bcrypt.MinCost
	out := &bytes.Buffer{}
	srv, err := taskflow.New(taskflow.WithConfig(cfg), taskflow.WithLogger(logger), taskflow.WithOutput(out))
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return NewWithIO(srv, strings.NewReader(script), out), out
}

func lines(input ...string) string {
	return strings.Join(input, "\n") + "\n"
}

func TestConsole_Run(t *testing.T) {
	testCases := []struct {
		name         string
		script       string
		expect       []string
		expectAbsent []string
	}{
		{
			name: "approve and rollback",
			script: lines(
				"2", "alice", "secret", "Senior",
				"1", "alice", "secret",
				"1", "Deploy service", "3",
				"3", "task0001", "1",
				"2",
				"4", "task0001",
				"6",
				"3",
			),
			expect: []string{
				"User registered: alice",
				"Login successful: alice",
				"=== Welcome, alice (Senior) ===",
				"Task created: task0001",
				"Notification for alice (Senior): Task task0001 status updated to: Approved by Senior\n",
				"Task task0001: Approved by Senior\n",
				"- ID: task0001, Description: Deploy service, Priority: 3, Status: Approved by Senior\n",
				"Notification for alice (Senior): Task task0001 status updated to: Pending\n",
				"Task task0001 rolled back to previous state: Pending (0 earlier states left)\n",
				"Logged out",
			},
		},
		{
			name: "reject with reason",
			script: lines(
				"2", "bob", "pass", "Junior",
				"1", "bob", "pass",
				"1", "Order supplies", "1",
				"3", "task0001", "2", "  out of budget ",
			),
			expect: []string{
				"Task task0001: Rejected: out of budget\n",
				"Notification for bob (Junior): Task task0001 status updated to: Rejected: out of budget\n",
			},
		},
		{
			name: "menu input errors",
			script: lines(
				"abc",
				"9",
				"1", "ghost", "pass",
				"2", "carol", "abc", "Junior",
				"3",
			),
			expect: []string{
				"Error: Please enter a number",
				"Error: Invalid option",
				"Error: invalid credentials",
				"Error: validation failed: password must be at least 4 characters",
			},
			expectAbsent: []string{"Login successful", "User registered"},
		},
		{
			name: "logged in errors",
			script: lines(
				"2", "dave", "pass", "Junior",
				"1", "dave", "pass",
				"1", "Hire", "x",
				"1", "", "2",
				"1", "Hire", "5",
				"1", "Deploy", "3",
				"3", "missing",
				"3", "task0001", "x",
				"3", "task0001", "7",
				"3", "task0001", "1",
				"4", "task0001",
				"5", "nope",
				"0",
			),
			expect: []string{
				"Error: Priority must be a number",
				"Error: validation failed: task description cannot be empty",
				"Error: validation failed: priority must be between 1 and 3",
				"Task created: task0001",
				"Error: task not found: missing",
				"Error: Action must be a number (1 or 2)",
				"Error: Invalid action",
				"Error: not eligible to approve: user role Junior cannot approve priority 3 (approver: Senior)",
				"Error: task task0001: no snapshots to restore",
				"Error: task not found: nope",
				"Error: Invalid option",
			},
		},
		{
			name: "watch",
			script: lines(
				"2", "erin", "pass", "Manager",
				"2", "frank", "pass", "Manager",
				"1", "erin", "pass",
				"1", "Buy laptops", "2",
				"6",
				"1", "frank", "pass",
				"5", "task0001",
				"3", "task0001", "1",
			),
			expect: []string{
				"Watching task task0001",
				"Notification for erin (Manager): Task task0001 status updated to: Approved by Manager\n" +
					"Notification for frank (Manager): Task task0001 status updated to: Approved by Manager\n",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			console, out := newTestConsole(t, tc.script)
			require.NoError(t, console.Run(context.Background()))
			for _, expect := range tc.expect {
				assert.Contains(t, out.String(), expect)
			}
			for _, absent := range tc.expectAbsent {
				assert.NotContains(t, out.String(), absent)
			}
		})
	}
}

func TestConsole_RunCancelled(t *testing.T) {
	console, _ := newTestConsole(t, lines("3"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, console.Run(ctx), context.Canceled)
	assert.Nil(t, console.User())
}
