package codec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	load, err := NewJSONLoad("load", nil)
	assert.Nil(t, err)
	actual, err := load.Execute(context.Background(), `{"data":["hello","world","!"]}`, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, map[string]interface{}{"data": []interface{}{"hello", "world", "!"}}, actual)

	_, err = load.Execute(context.Background(), 12, nil, nil)
	assert.NotNil(t, err)
	_, err = load.Execute(context.Background(), []byte("{"), nil, nil)
	assert.NotNil(t, err)

	dump, err := NewJSONDump("dump", nil)
	assert.Nil(t, err)
	text, err := dump.Execute(context.Background(), []string{"a", "b"}, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, `["a","b"]`, text)

	indented, err := NewJSONDump("dump", map[string]interface{}{"indent": "  "})
	assert.Nil(t, err)
	text, err = indented.Execute(context.Background(), map[string]int{"a": 1}, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", text)
}

func TestCSVLoad(t *testing.T) {
	var testCases = []struct {
		description string
		config      map[string]interface{}
		input       interface{}
		expect      interface{}
		expectErr   bool
	}{
		{
			description: "list",
			input:       "id,name\n1,foo\n2,bar\n",
			expect:      [][]string{{"id", "name"}, {"1", "foo"}, {"2", "bar"}},
		},
		{
			description: "dict",
			config:      map[string]interface{}{"dataType": "dict", "delimiter": ";"},
			input:       []byte("id;name\n1;foo\n2\n"),
			expect:      []map[string]string{{"id": "1", "name": "foo"}, {"id": "2"}},
		},
		{
			description: "empty dict",
			config:      map[string]interface{}{"dataType": "dict"},
			input:       "",
			expect:      []map[string]string{},
		},
		{
			description: "invalid payload",
			input:       42,
			expectErr:   true,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			block, err := NewCSVLoad("csv", testCase.config)
			if !assert.Nil(t, err) {
				return
			}
			actual, err := block.Execute(context.Background(), testCase.input, nil, nil)
			if testCase.expectErr {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}

	_, err := NewCSVLoad("csv", map[string]interface{}{"dataType": "table"})
	assert.NotNil(t, err)
	_, err = NewCSVLoad("csv", map[string]interface{}{"delimiter": "||"})
	assert.NotNil(t, err)
}
