package criteria

import (
	"github.com/viant/taskflow/service/dao"
)

// MatchStatus reports whether status satisfies every Status parameter.
// Parameters with other names are ignored.
func MatchStatus(status string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != "Status" {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			if status != actual {
				return false
			}
		case []string:
			if !contains(actual, status) {
				return false
			}
		}
	}
	return true
}

func contains(values []string, candidate string) bool {
	for _, v := range values {
		if v == candidate {
			return true
		}
	}
	return false
}
