package approval

import (
	"sort"

	"github.com/viant/taskflow/internal/clock"
	"github.com/viant/taskflow/model"
)

// Handler decides whether a task may be approved at its priority and
// records the outcome on the task. Routing never fails: an unmatched task
// ends up rejected.
type Handler interface {
	Handle(task *model.Task) *Decision
}

type approver struct {
	level Level
	next  *approver
}

func (a *approver) Handle(task *model.Task) *Decision {
	if a.level.Priority == task.Priority() {
		return decide(task, true, a.level.Label, "")
	}
	if a.next != nil {
		return a.next.Handle(task)
	}
	return decide(task, false, "", "No suitable approver")
}

func decide(task *model.Task, approved bool, label, reason string) *Decision {
	status := model.StatusNoApprover
	if approved {
		status = model.ApprovedBy(label)
	}
	// status is never blank here
	_ = task.SetStatus(status)
	return &Decision{
		TaskID:    task.ID,
		Approved:  approved,
		Approver:  label,
		Reason:    reason,
		Status:    status,
		DecidedAt: clock.Now(),
	}
}

// NewChain links one approver per level in ascending priority order. With no
// levels the default Junior, Manager, Senior chain is built.
func NewChain(levels ...Level) Handler {
	if len(levels) == 0 {
		levels = DefaultLevels()
	}
	ordered := append([]Level(nil), levels...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Priority < ordered[j].Priority })

	var head *approver
	for i := len(ordered) - 1; i >= 0; i-- {
		head = &approver{level: ordered[i], next: head}
	}
	return head
}
