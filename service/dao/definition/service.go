package definition

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/fluxpath/service/dao"
	"github.com/viant/fluxpath/service/dao/criteria"
	"github.com/viant/fluxpath/service/dao/store"
	"github.com/viant/fluxpath/service/meta"
)

// Service keeps definitions by name, loading missing ones through meta
type Service struct {
	*store.MemoryStore[string, Definition]
	meta *meta.Service
}

// Load returns a stored definition by name or URL; anything else is loaded
// from the location and stored
func (s *Service) Load(ctx context.Context, id string) (*Definition, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	ret, err := s.MemoryStore.Load(ctx, id)
	if err == nil {
		return ret, nil
	}
	if !errors.Is(err, dao.ErrNotFound) {
		return nil, err
	}
	if matched, _ := s.List(ctx, dao.NewParameter("URL", s.meta.URL(location(id)))); len(matched) > 0 {
		return matched[0], nil
	}
	if ret, err = s.Fetch(ctx, id); err != nil {
		return nil, err
	}
	if err = s.Save(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Fetch loads and parses a definition document without storing it
func (s *Service) Fetch(ctx context.Context, URL string) (*Definition, error) {
	URL = s.meta.URL(location(URL))
	node, err := s.meta.LoadNode(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load definition from %s: %w", URL, err)
	}
	return parse(URL, node)
}

func location(URL string) string {
	if filepath.Ext(URL) == "" {
		return URL + ".yaml"
	}
	return URL
}

func matches(d *Definition, parameters []*dao.Parameter) bool {
	return criteria.Match(map[string]string{"Name": d.Name, "URL": d.URL}, parameters)
}

// New creates a definition service resolving relative locations against baseURL
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, Definition](func(d *Definition) string { return d.Name }).WithMatcher(matches),
		meta:        meta.New(fs, baseURL, options...),
	}
}

// Load loads a definition document from URL
func Load(ctx context.Context, URL string) (*Definition, error) {
	return New(nil, "").Fetch(ctx, URL)
}

var _ dao.Service[string, Definition] = (*Service)(nil)
