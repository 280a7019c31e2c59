package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fluxpath/service/dao"
)

func TestMatch(t *testing.T) {
	attributes := map[string]string{"Name": "etl", "URL": "mem://localhost/etl.yaml"}
	var testCases = []struct {
		description string
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no parameters", expect: true},
		{description: "single value", parameters: []*dao.Parameter{dao.NewParameter("Name", "etl")}, expect: true},
		{description: "single value mismatch", parameters: []*dao.Parameter{dao.NewParameter("Name", "cache")}, expect: false},
		{description: "any of values", parameters: []*dao.Parameter{dao.NewParameter("Name", "cache", "etl")}, expect: true},
		{description: "unknown attribute", parameters: []*dao.Parameter{dao.NewParameter("State", "done")}, expect: true},
		{description: "all must match", parameters: []*dao.Parameter{dao.NewParameter("Name", "etl"), dao.NewParameter("URL", "other")}, expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Match(attributes, testCase.parameters), testCase.description)
	}
}
