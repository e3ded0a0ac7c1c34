package approval

import "github.com/viant/taskflow/model"

// LabelFor returns the label of the level bound to priority.
func LabelFor(levels []Level, priority model.Priority) (string, bool) {
	for _, level := range levels {
		if level.Priority == priority {
			return level.Label, true
		}
	}
	return "", false
}
