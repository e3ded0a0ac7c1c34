package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/taskflow/service/dao"
)

func TestMatchStatus(t *testing.T) {
	testCases := []struct {
		name       string
		status     string
		parameters []*dao.Parameter
		expect     bool
	}{
		{name: "no parameters", status: "Pending", expect: true},
		{name: "single match", status: "Pending", parameters: []*dao.Parameter{dao.StatusParameter("Pending")}, expect: true},
		{name: "single mismatch", status: "Rejected", parameters: []*dao.Parameter{dao.StatusParameter("Pending")}, expect: false},
		{name: "any of", status: "Rejected", parameters: []*dao.Parameter{dao.StatusParameter("Pending", "Rejected")}, expect: true},
		{name: "none of", status: "Approved by Senior", parameters: []*dao.Parameter{dao.StatusParameter("Pending", "Rejected")}, expect: false},
		{name: "other names ignored", status: "Pending", parameters: []*dao.Parameter{dao.NewParameter("Owner", "alice"), nil}, expect: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, MatchStatus(tc.status, tc.parameters))
		})
	}
}
