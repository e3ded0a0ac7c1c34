package dao

// Parameter is a named List filter.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter builds a filter; several values match any of them.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// StatusParameter filters tasks by status.
func StatusParameter(statuses ...string) *Parameter {
	return NewParameter("Status", statuses...)
}
