package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr: mr.Addr(),
	})
	store := New(client, "calckit:")
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestStoreRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "groups:dev", `[{"name":"Roommates"}]`))

	value, ok, err := store.Get(ctx, "groups:dev")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"name":"Roommates"}]`, value)

	// Keys are namespaced
	raw, err := mr.Get("calckit:groups:dev")
	require.NoError(t, err)
	assert.Equal(t, value, raw)

	require.NoError(t, store.Delete(ctx, "groups:dev"))
	assert.False(t, mr.Exists("calckit:groups:dev"))
	require.NoError(t, store.Delete(ctx, "groups:dev"))
}

func TestStoreGetError(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, _, err := store.Get(context.Background(), "anything")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	store, err := Connect(context.Background(), addr, "", 0, "p:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	assert.True(t, mr.Exists("p:k"))

	// Addr is not usable once the server is closed
	mr.Close()
	_, err = Connect(context.Background(), addr, "", 0, "p:")
	assert.Error(t, err)
}
