package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, "test"), mr
}

func TestStoreSetGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	want := []catalogEntry{{ID: 1, Name: "Physics"}, {ID: 2, Name: "Math"}}
	require.NoError(t, store.Set(ctx, "subjects:catalog", want, time.Minute))

	var got []catalogEntry
	require.NoError(t, store.Get(ctx, "subjects:catalog", &got))
	assert.Equal(t, want, got)
}

func TestStoreGetMiss(t *testing.T) {
	store, _ := newTestStore(t)

	var got []catalogEntry
	err := store.Get(context.Background(), "missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreTTLExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "subjects:catalog", []catalogEntry{{ID: 1}}, time.Minute))

	mr.FastForward(2 * time.Minute)

	var got []catalogEntry
	err := store.Get(ctx, "subjects:catalog", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreInvalidate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "subjects:catalog", []catalogEntry{{ID: 1}}, time.Minute))
	require.NoError(t, store.Invalidate(ctx, "subjects:catalog"))

	var got []catalogEntry
	err := store.Get(ctx, "subjects:catalog", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreNilClientDegrades(t *testing.T) {
	store := NewStore(nil, "test")
	ctx := context.Background()

	var got []catalogEntry
	assert.ErrorIs(t, store.Get(ctx, "anything", &got), ErrNotAvailable)
	assert.NoError(t, store.Set(ctx, "anything", got, time.Minute))
	assert.NoError(t, store.Invalidate(ctx, "anything"))
}
