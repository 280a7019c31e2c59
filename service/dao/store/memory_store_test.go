package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fluxpath/service/dao"
)

type record struct {
	ID   string
	Kind string
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[string, record](func(r *record) string { return r.ID }).
		WithMatcher(func(r *record, parameters []*dao.Parameter) bool {
			for _, parameter := range parameters {
				if parameter.Name == "Kind" && parameter.Value != r.Kind {
					return false
				}
			}
			return true
		})

	assert.True(t, errors.Is(store.Save(ctx, nil), dao.ErrNilEntity))
	assert.True(t, errors.Is(store.Save(ctx, &record{}), dao.ErrInvalidID))

	assert.Nil(t, store.Save(ctx, &record{ID: "b", Kind: "x"}))
	assert.Nil(t, store.Save(ctx, &record{ID: "a", Kind: "y"}))
	assert.Nil(t, store.Save(ctx, &record{ID: "b", Kind: "y"}))

	all, err := store.List(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []*record{{ID: "b", Kind: "y"}, {ID: "a", Kind: "y"}}, all)

	filtered, err := store.List(ctx, dao.NewParameter("Kind", "x"))
	assert.Nil(t, err)
	assert.Empty(t, filtered)

	loaded, err := store.Load(ctx, "a")
	assert.Nil(t, err)
	assert.Equal(t, "y", loaded.Kind)

	assert.Nil(t, store.Delete(ctx, "a"))
	_, err = store.Load(ctx, "a")
	assert.True(t, errors.Is(err, dao.ErrNotFound))
	assert.True(t, errors.Is(store.Delete(ctx, "a"), dao.ErrNotFound))
}
