package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/taskflow/internal/idgen"
	"github.com/viant/taskflow/service/notify"
)

func TestNewTask(t *testing.T) {
	testCases := []struct {
		name        string
		description string
		priority    Priority
		expectError bool
	}{
		{name: "low", description: "Write docs", priority: PriorityLow},
		{name: "medium", description: "Review PR", priority: PriorityMedium},
		{name: "high", description: "Deploy service", priority: PriorityHigh},
		{name: "empty description", description: "", priority: PriorityLow, expectError: true},
		{name: "blank description", description: "   ", priority: PriorityLow, expectError: true},
		{name: "priority too low", description: "x", priority: 0, expectError: true},
		{name: "priority too high", description: "x", priority: 4, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			task, err := NewTask(tc.description, tc.priority)
			if tc.expectError {
				assert.ErrorIs(t, err, ErrValidation)
				assert.Nil(t, task)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusPending, task.Status())
			assert.Equal(t, tc.priority, task.Priority())
			assert.Equal(t, tc.description, task.Description)
			assert.Len(t, task.ID, idgen.Size)
			assert.Empty(t, task.Subscribers())
		})
	}
}

func TestNewTask_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		task, err := NewTask("t", PriorityLow)
		require.NoError(t, err)
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}

func TestTask_SetStatus(t *testing.T) {
	task, err := NewTaskWithID("abc12345", "Deploy service", PriorityHigh)
	require.NoError(t, err)

	var first, second []string
	task.Attach(notify.Func(func(e string) { first = append(first, e) }))
	task.Attach(notify.Func(func(e string) { second = append(second, e) }))

	require.NoError(t, task.SetStatus("Approved by Senior"))
	expected := []string{"Task abc12345 status updated to: Approved by Senior"}
	assert.Equal(t, expected, first)
	assert.Equal(t, expected, second)
	assert.Equal(t, "Approved by Senior", task.Status())

	err = task.SetStatus("  ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Approved by Senior", task.Status())
	assert.Len(t, first, 1)
}

func TestTask_AttachIdempotent(t *testing.T) {
	task, err := NewTask("x", PriorityLow)
	require.NoError(t, err)
	count := 0
	s := notify.Func(func(string) { count++ })
	task.Attach(s)
	task.Attach(s)
	require.NoError(t, task.SetStatus("Rejected"))
	assert.Equal(t, 1, count)

	task.Detach(s)
	task.Detach(s)
	require.NoError(t, task.SetStatus("Pending"))
	assert.Equal(t, 1, count)
}

func TestNewUser(t *testing.T) {
	testCases := []struct {
		name        string
		username    string
		password    string
		role        string
		expectError bool
	}{
		{name: "valid", username: "alice", password: "pass", role: RoleJunior},
		{name: "custom role", username: "bob", password: "secret", role: "Intern"},
		{name: "blank username", username: " ", password: "pass", role: RoleJunior, expectError: true},
		{name: "short password", username: "alice", password: "abc", role: RoleJunior, expectError: true},
		{name: "blank role", username: "alice", password: "pass", role: "", expectError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := NewUser(tc.username, tc.password, tc.role)
			if tc.expectError {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.username+" ("+tc.role+")", user.String())
		})
	}
}

func TestRejectedWith(t *testing.T) {
	assert.Equal(t, "Rejected", RejectedWith(""))
	assert.Equal(t, "Rejected: budget", RejectedWith("budget"))
	assert.Equal(t, "Approved by Manager", ApprovedBy("Manager"))
}

type labelSubscriber struct {
	labels []string
}

func (s labelSubscriber) Receive(string) {}

func TestTask_AttachNonComparableSubscriber(t *testing.T) {
	task, err := NewTask("Deploy service", PriorityHigh)
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		task.Attach(labelSubscriber{labels: []string{"a"}})
		task.Attach(labelSubscriber{labels: []string{"a"}})
	})
	assert.Len(t, task.Subscribers(), 1)
	assert.NotPanics(t, func() { require.NoError(t, task.SetStatus(StatusRejected)) })
}

func TestStatusOf(t *testing.T) {
	status, ok := StatusOf("abc", StatusEvent("abc", "Rejected: Task budget"))
	assert.True(t, ok)
	assert.Equal(t, "Rejected: Task budget", status)

	_, ok = StatusOf("xyz", StatusEvent("abc", StatusPending))
	assert.False(t, ok)
}
