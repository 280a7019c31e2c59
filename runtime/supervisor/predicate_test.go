package supervisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fluxpath/model/carrier"
)

func TestExprPredicate(t *testing.T) {
	var testCases = []struct {
		description string
		expression  string
		until       bool
		payload     interface{}
		context     map[string]interface{}
		expect      bool
		expectErr   bool
	}{
		{description: "payload compare", expression: `payload == "ready"`, payload: "ready", expect: true},
		{description: "context lookup", expression: `context.status != "done"`, context: map[string]interface{}{"status": "done"}, expect: false},
		{description: "traversal bound", expression: `traversals < 3`, expect: true},
		{description: "until negates", expression: `payload == "ready"`, until: true, payload: "ready", expect: false},
		{description: "not boolean", expression: `1 + 2`, expectErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			build := ExprPredicate
			if testCase.until {
				build = UntilPredicate
			}
			predicate, err := build(testCase.expression)
			if testCase.expectErr {
				assert.NotNil(t, err)
				return
			}
			if !assert.Nil(t, err) {
				return
			}
			c, err := carrier.New("p", testCase.payload, "a", carrier.WithContext(testCase.context))
			assert.Nil(t, err)
			actual, err := predicate(c)
			assert.Nil(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}
