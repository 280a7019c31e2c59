package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/fluxpath"
)

type carrierFlags struct {
	schema  string
	path    string
	payload string
	json    bool
	context []string
}

func (c *carrierFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&c.schema, "schema", "", "network definition URL (required)")
	f.StringVar(&c.path, "path", "", "itinerary name; defaults to the first one")
	f.StringVar(&c.payload, "payload", "", "initial payload")
	f.BoolVar(&c.json, "json", false, "decode payload as JSON")
	f.StringArrayVar(&c.context, "context", nil, "context entry key=value (repeatable)")
	_ = cmd.MarkFlagRequired("schema")
}

func (c *carrierFlags) decodePayload() (interface{}, error) {
	if !c.json {
		return c.payload, nil
	}
	var ret interface{}
	if err := json.Unmarshal([]byte(c.payload), &ret); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}
	return ret, nil
}

func (c *carrierFlags) decodeContext() (map[string]interface{}, error) {
	ret := make(map[string]interface{}, len(c.context))
	for _, entry := range c.context {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid context entry %q, expected key=value", entry)
		}
		ret[key] = value
	}
	return ret, nil
}

func newService(cmd *cobra.Command, flags *rootFlags, options ...fluxpath.Option) (*fluxpath.Service, error) {
	config := fluxpath.DefaultConfig()
	if flags.config != "" {
		loaded, err := fluxpath.LoadConfig(cmd.Context(), flags.config)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if flags.verbosity > 0 {
		config.Log.Verbosity = flags.verbosity
	}
	if flags.tracing != "" {
		config.Tracing.Enabled = true
		config.Tracing.OutputFile = flags.tracing
	}
	return fluxpath.New(append([]fluxpath.Option{fluxpath.WithConfig(config), fluxpath.WithOutput(cmd.OutOrStdout())}, options...)...)
}

func printPayload(w io.Writer, payload interface{}) error {
	if text, ok := payload.(string); ok {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		_, err = fmt.Fprintf(w, "%v\n", payload)
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
