package builtin

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/schema"
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/fluxpath/runtime/network"
	"github.com/viant/fluxpath/station/cache"
)

func add(t *testing.T, registry *station.Registry, aSchema *schema.Schema, kind, name string, config map[string]interface{}) {
	factory := registry.Lookup(kind)
	if !assert.NotNil(t, factory, kind) {
		return
	}
	assert.Nil(t, aSchema.Add(factory, name, config))
}

func TestRegistry_Kinds(t *testing.T) {
	registry, err := Registry()
	assert.Nil(t, err)
	assert.Equal(t, []string{"cache", "csv.load", "extract", "file.read", "file.write", "json.dump", "json.load", "print", "subnetwork"}, registry.Kinds())
}

func TestLoadJSON_ExtractKey(t *testing.T) {
	registry, err := Registry()
	assert.Nil(t, err)
	aSchema := schema.New()
	add(t, registry, aSchema, "json.load", "loadJson", nil)
	add(t, registry, aSchema, "extract", "extractKey", map[string]interface{}{"key": "data"})
	assert.Nil(t, aSchema.Connect("loadJson", "extractKey"))

	aCarrier, err := carrier.New("Carrier", `{"data":["hello","world","!"]}`, []string{"loadJson", "extractKey"})
	assert.Nil(t, err)
	assert.Nil(t, network.New(aSchema).SendCarrier(context.Background(), aCarrier))
	assert.Equal(t, []interface{}{"hello", "world", "!"}, aCarrier.Payload)
}

func TestLoadJSON_Suppressed(t *testing.T) {
	registry, err := Registry()
	assert.Nil(t, err)
	aSchema := schema.New()
	add(t, registry, aSchema, "json.load", "load_json", map[string]interface{}{schema.RaiseErrorKey: false})
	aCarrier, _ := carrier.New("Carrier", "not json", "load_json")
	assert.Nil(t, network.New(aSchema).SendCarrier(context.Background(), aCarrier))
	assert.Equal(t, "not json", aCarrier.Payload)
}

func TestCache_ShortCircuit(t *testing.T) {
	store, err := cache.NewLRU(8)
	assert.Nil(t, err)
	registry, err := Registry(WithCacheStore(store))
	assert.Nil(t, err)

	var computed int32
	aSchema := schema.New()
	assert.Nil(t, aSchema.Register("extract_request_data", station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
		return map[string]interface{}{"cache_key": payload}, nil
	})))
	add(t, registry, aSchema, "cache", "read_cache", map[string]interface{}{"action": "get", "keyPrefix": "resp", "nextStation": "set_cache"})
	assert.Nil(t, aSchema.Register("computing_response", station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
		atomic.AddInt32(&computed, 1)
		ret := map[string]interface{}{}
		for k, v := range payload.(map[string]interface{}) {
			ret[k] = v
		}
		ret["resp"] = fmt.Sprintf("computed %v", ret["cache_key"])
		return ret, nil
	})))
	add(t, registry, aSchema, "cache", "set_cache", map[string]interface{}{"action": "set", "keyPrefix": "resp"})
	assert.Nil(t, aSchema.ConnectChain("extract_request_data", "read_cache", "computing_response", "set_cache"))

	net := network.New(aSchema, network.WithPathValidation(true))
	itinerary := []string{"extract_request_data", "read_cache", "computing_response", "set_cache"}
	for i := 0; i < 2; i++ {
		aCarrier, err := carrier.New(fmt.Sprintf("C%d", i), "/?n=5", itinerary)
		assert.Nil(t, err)
		assert.Nil(t, net.SendCarrier(context.Background(), aCarrier))
		assert.Equal(t, "computed /?n=5", aCarrier.Payload.(map[string]interface{})["resp"])
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&computed))
}

func TestCSV_ToJSONFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "file.csv")
	dest := filepath.Join(dir, "file.json")
	assert.Nil(t, os.WriteFile(source, []byte("id,name\n1,foo\n2,bar\n"), 0644))
	output := &bytes.Buffer{}
	registry, err := Registry(WithOutput(output))
	assert.Nil(t, err)

	aSchema := schema.New()
	add(t, registry, aSchema, "file.read", "read_file", nil)
	add(t, registry, aSchema, "csv.load", "read_csv_data", map[string]interface{}{"dataType": "dict"})
	add(t, registry, aSchema, "json.dump", "json_to_str", nil)
	add(t, registry, aSchema, "file.write", "write_file", map[string]interface{}{"fileNameKey": "write_file"})
	add(t, registry, aSchema, "print", "print", nil)
	assert.Nil(t, aSchema.ConnectChain("read_file", "read_csv_data", "json_to_str", "print"))
	assert.Nil(t, aSchema.ConnectChain("read_file", "read_csv_data", "json_to_str", "write_file"))
	net := network.New(aSchema, network.WithPathValidation(true))

	context1 := map[string]interface{}{"file_name": source, "write_file": dest}
	toFile, err := carrier.New("file", nil, "read_file/read_csv_data/json_to_str/write_file", carrier.WithContext(context1))
	assert.Nil(t, err)
	assert.Nil(t, net.SendCarrier(context.Background(), toFile))
	expect := `[{"id":"1","name":"foo"},{"id":"2","name":"bar"}]`
	data, err := os.ReadFile(dest)
	assert.Nil(t, err)
	assert.Equal(t, expect, string(data))

	toPrint, err := carrier.New("print", nil, "read_file/read_csv_data/json_to_str/print", carrier.WithContext(context1))
	assert.Nil(t, err)
	assert.Nil(t, net.SendCarrier(context.Background(), toPrint))
	assert.Equal(t, expect+"\n", output.String())
}

func TestSubnetwork_HelloWorld(t *testing.T) {
	registry, err := Registry()
	assert.Nil(t, err)
	extractSchema := schema.New()
	add(t, registry, extractSchema, "json.load", "load_json", nil)
	add(t, registry, extractSchema, "extract", "extract_data", map[string]interface{}{"key": "data"})
	assert.Nil(t, extractSchema.Connect("load_json", "extract_data"))
	networks := map[string]*network.Network{"extract": network.New(extractSchema)}

	registry, err = Registry(WithNetworks(func(name string) (*network.Network, error) {
		if net, ok := networks[name]; ok {
			return net, nil
		}
		return nil, fmt.Errorf("unknown network %q", name)
	}))
	assert.Nil(t, err)
	baseSchema := schema.New()
	add(t, registry, baseSchema, "subnetwork", "extract_data", map[string]interface{}{"network": "extract", "path": "load_json/extract_data"})
	assert.Nil(t, baseSchema.Register("prepare_hello_world", station.BlockFunc(func(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
		var text string
		switch actual := payload.(type) {
		case []interface{}:
			parts := make([]string, 0, len(actual))
			for _, item := range actual {
				parts = append(parts, fmt.Sprint(item))
			}
			text = strings.Join(parts, ",")
		default:
			text = fmt.Sprint(payload)
		}
		text = strings.ReplaceAll(strings.ReplaceAll(text, ",", " "), " !", "!")
		return strings.ToUpper(text), nil
	})))
	net := network.New(baseSchema)

	for input, expect := range map[string]string{
		`{"data": ["hello","world","!"]}`: "HELLO WORLD!",
		`{"data": "let's,go,!"}`:          "LET'S GO!",
	} {
		aCarrier, err := carrier.New("Carrier", input, "extract_data/prepare_hello_world")
		assert.Nil(t, err)
		assert.Nil(t, net.SendCarrier(context.Background(), aCarrier))
		assert.Equal(t, expect, aCarrier.Payload)
	}
}
