// Package meta loads configuration and definition documents through afs,
// expanding ${env.KEY} expressions before decoding.
package meta

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/fluxpath/internal/yml"
	"gopkg.in/yaml.v3"
)

// Service loads documents relative to a base URL
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// URL resolves location against the base URL
func (s *Service) URL(location string) string {
	if s.baseURL == "" || !url.IsRelative(location) {
		return location
	}
	return url.Join(s.baseURL, location)
}

// Download returns document content with env expressions expanded
func (s *Service) Download(ctx context.Context, location string) ([]byte, error) {
	URL := s.URL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to download %v: %w", URL, err)
	}
	return []byte(expandEnvExpr(string(data))), nil
}

// Load decodes a YAML or JSON document into dest
func (s *Service) Load(ctx context.Context, location string, dest interface{}) error {
	data, err := s.Download(ctx, location)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %v: %w", s.URL(location), err)
	}
	return nil
}

// LoadNode decodes a YAML or JSON document into a navigable node
func (s *Service) LoadNode(ctx context.Context, location string) (*yml.Node, error) {
	data, err := s.Download(ctx, location)
	if err != nil {
		return nil, err
	}
	node, err := yml.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", s.URL(location), err)
	}
	return node, nil
}

// New creates a meta service; nil fs uses afs.New(). Options are passed to
// every download, e.g. an embed.FS for embed:// URLs.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL, options: options}
}
