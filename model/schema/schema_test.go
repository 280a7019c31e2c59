package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/path"
	"github.com/viant/fluxpath/model/station"
)

var echo = station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	return payload, nil
})

func TestSchema_Add(t *testing.T) {
	var captured map[string]interface{}
	factory := func(name string, config map[string]interface{}) (station.Block, error) {
		captured = config
		if name == "broken" {
			return nil, errors.New("cannot build")
		}
		return echo, nil
	}
	aSchema := New()
	assert.Nil(t, aSchema.Add(factory, "load", map[string]interface{}{"key": "data", RaiseErrorKey: "false"}))
	assert.Equal(t, map[string]interface{}{"key": "data"}, captured)
	loaded, ok := aSchema.Lookup("load")
	assert.True(t, ok)
	assert.False(t, loaded.RaiseError)
	assert.Equal(t, map[string]interface{}{"key": "data"}, loaded.Config)

	err := aSchema.Add(factory, "load", nil)
	assert.ErrorIs(t, err, ErrDuplicateName)
	duplicate := &DuplicateNameError{}
	assert.True(t, errors.As(err, &duplicate))
	assert.Equal(t, "load", duplicate.Name)

	assert.NotNil(t, aSchema.Add(factory, "broken", nil))
	assert.NotNil(t, aSchema.Add(nil, "nil", nil))

	assert.Nil(t, aSchema.Register("extract", echo))
	extract, _ := aSchema.Lookup("extract")
	assert.True(t, extract.RaiseError)
	assert.Equal(t, []string{"load", "extract"}, aSchema.Names())
	assert.ErrorIs(t, aSchema.Register("extract", echo), ErrDuplicateName)
}

func TestSchema_Connect(t *testing.T) {
	aSchema := New()
	for _, name := range []string{"read", "parse", "dump", "print", "write"} {
		assert.Nil(t, aSchema.Register(name, echo))
	}
	assert.Nil(t, aSchema.ConnectChain("read", "parse", "dump", "print"))
	assert.Nil(t, aSchema.ConnectChain("read", "parse", "dump", "write"))
	assert.Equal(t, []string{"print", "write"}, aSchema.Successors("dump"))
	assert.Equal(t, []string{"parse"}, aSchema.Successors("read"))
	assert.True(t, aSchema.HasEdge("parse", "dump"))
	assert.False(t, aSchema.HasEdge("dump", "parse"))
	assert.Len(t, aSchema.Edges(), 3)
	assert.Nil(t, aSchema.Validate())

	assert.Nil(t, aSchema.Connect("write", "archive"))
	assert.ErrorIs(t, aSchema.Validate(), ErrUnknownStation)
}

func TestSchema_ValidatePath(t *testing.T) {
	aSchema := New()
	for _, name := range []string{"a", "b", "c", "d"} {
		assert.Nil(t, aSchema.Register(name, echo))
	}
	assert.Nil(t, aSchema.ConnectChain("a", "b", "d"))
	assert.Nil(t, aSchema.ConnectChain("a", "c", "d"))

	var testCases = []struct {
		description string
		spec        string
		expectErr   error
	}{
		{description: "linear", spec: "a/b/d"},
		{description: "fan out and merge", spec: "a/((b|c))/(d|d)"},
		{description: "gated", spec: "a#in/b#out/d"},
		{description: "missing edge", spec: "a/d", expectErr: ErrMissingEdge},
		{description: "unknown station", spec: "a/x", expectErr: ErrUnknownStation},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			err := aSchema.ValidatePath(path.MustParse(testCase.spec))
			if testCase.expectErr != nil {
				assert.ErrorIs(t, err, testCase.expectErr)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestSchema_Seal(t *testing.T) {
	aSchema := New()
	assert.Nil(t, aSchema.Register("a", echo))
	aSchema.Seal()
	assert.True(t, aSchema.Sealed())
	assert.ErrorIs(t, aSchema.Register("b", echo), ErrSealed)
	assert.ErrorIs(t, aSchema.Add(station.FactoryOf(echo), "c", nil), ErrSealed)
	assert.ErrorIs(t, aSchema.Connect("a", "b"), ErrSealed)
	_, ok := aSchema.Lookup("a")
	assert.True(t, ok)
}
