// Package file provides stations reading and writing payloads with afs.
package file

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	afsfile "github.com/viant/afs/file"
	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/station"
	"github.com/viant/toolbox"
)

const (
	// ReadKind loads file content into the payload
	ReadKind = "file.read"
	// WriteKind stores the payload into a file
	WriteKind = "file.write"

	defaultReadKey  = "file_name"
	defaultWriteKey = "write_file"
)

// Config configures file stations. URL is used when the carrier context has
// no value under FileNameKey.
type Config struct {
	FileNameKey string `json:"fileNameKey,omitempty" yaml:"fileNameKey,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

func (c *Config) location(state *carrier.Context) (string, error) {
	if state != nil {
		if value, ok := state.Get(c.FileNameKey); ok && value != nil {
			return toolbox.AsString(value), nil
		}
	}
	if c.URL != "" {
		return c.URL, nil
	}
	return "", fmt.Errorf("file location not found in context key %q", c.FileNameKey)
}

// Read replaces the payload with file content
type Read struct {
	fs     afs.Service
	config Config
}

// Execute reads file
func (r *Read) Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	URL, err := r.config.location(state)
	if err != nil {
		return nil, err
	}
	data, err := r.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	return string(data), nil
}

// Write stores the payload text and passes the payload on unchanged
type Write struct {
	fs     afs.Service
	config Config
}

// Execute writes file
func (w *Write) Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	URL, err := w.config.location(state)
	if err != nil {
		return nil, err
	}
	var data []byte
	switch actual := payload.(type) {
	case []byte:
		data = actual
	default:
		data = []byte(toolbox.AsString(payload))
	}
	if err = w.fs.Upload(ctx, URL, afsfile.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to write %v: %w", URL, err)
	}
	return payload, nil
}

// NewReadFactory returns file.read factory; nil fs uses afs.New()
func NewReadFactory(fs afs.Service) station.Factory {
	if fs == nil {
		fs = afs.New()
	}
	return func(name string, config map[string]interface{}) (station.Block, error) {
		ret := &Read{fs: fs, config: Config{FileNameKey: defaultReadKey}}
		if err := station.DecodeConfig(config, &ret.config); err != nil {
			return nil, fmt.Errorf("invalid %v config: %w", name, err)
		}
		return ret, nil
	}
}

// NewWriteFactory returns file.write factory; nil fs uses afs.New()
func NewWriteFactory(fs afs.Service) station.Factory {
	if fs == nil {
		fs = afs.New()
	}
	return func(name string, config map[string]interface{}) (station.Block, error) {
		ret := &Write{fs: fs, config: Config{FileNameKey: defaultWriteKey}}
		if err := station.DecodeConfig(config, &ret.config); err != nil {
			return nil, fmt.Errorf("invalid %v config: %w", name, err)
		}
		return ret, nil
	}
}
