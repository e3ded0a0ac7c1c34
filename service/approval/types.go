package approval

import (
	"time"

	"github.com/viant/taskflow/model"
)

// Level binds an approver label to the single priority it may approve.
type Level struct {
	Priority model.Priority `json:"priority" yaml:"priority" validate:"min=1,max=3"`
	Label    string         `json:"label" yaml:"label" validate:"required"`
}

// DefaultLevels returns Junior(1), Manager(2), Senior(3).
func DefaultLevels() []Level {
	return []Level{
		{Priority: model.PriorityLow, Label: model.RoleJunior},
		{Priority: model.PriorityMedium, Label: model.RoleManager},
		{Priority: model.PriorityHigh, Label: model.RoleSenior},
	}
}

// Decision records the outcome of routing a task through the chain.
type Decision struct {
	TaskID    string    `json:"taskId"`
	Approved  bool      `json:"approved"`
	Approver  string    `json:"approver,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
	DecidedAt time.Time `json:"decidedAt"`
}
