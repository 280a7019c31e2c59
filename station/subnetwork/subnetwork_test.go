package subnetwork

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/schema"
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/fluxpath/runtime/network"
)

func TestBlock(t *testing.T) {
	inner := schema.New()
	assert.Nil(t, inner.Register("upper", station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
		state.Set("seen", c.Parent().ID)
		return strings.ToUpper(payload.(string)), nil
	})))
	assert.Nil(t, inner.Register("exclaim", station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
		return payload.(string) + "!", nil
	})))
	innerNetwork := network.New(inner)
	resolver := func(name string) (*network.Network, error) {
		if name == "shout" {
			return innerNetwork, nil
		}
		return nil, fmt.Errorf("unknown network %q", name)
	}

	var testCases = []struct {
		description string
		config      map[string]interface{}
		payload     interface{}
		expect      interface{}
		expectErr   bool
	}{
		{
			description: "whole payload",
			config:      map[string]interface{}{"network": "shout", "path": "upper/exclaim"},
			payload:     "hi",
			expect:      "HI!",
		},
		{
			description: "input and output key",
			config:      map[string]interface{}{"network": "shout", "path": []interface{}{"upper"}, "inputKey": "text", "outputKey": "shouted"},
			payload:     map[string]interface{}{"text": "hey"},
			expect:      map[string]interface{}{"text": "hey", "shouted": "HEY"},
		},
		{
			description: "input key on text payload",
			config:      map[string]interface{}{"network": "shout", "path": "upper", "inputKey": "text"},
			payload:     "hey",
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			outer := schema.New()
			assert.Nil(t, outer.Add(NewFactory(resolver), "nested", testCase.config))
			aCarrier, err := carrier.New("outer", testCase.payload, "nested")
			assert.Nil(t, err)
			err = network.New(outer).SendCarrier(context.Background(), aCarrier)
			if testCase.expectErr {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, testCase.expect, aCarrier.Payload)
			seen, _ := aCarrier.Context.Get("seen")
			assert.Equal(t, "outer", seen, "context is shared with the nested carrier")
		})
	}

	outer := schema.New()
	assert.NotNil(t, outer.Add(NewFactory(resolver), "bad", map[string]interface{}{"network": "missing", "path": "upper"}))
	assert.NotNil(t, outer.Add(NewFactory(resolver), "empty", map[string]interface{}{"network": "shout"}))
}
