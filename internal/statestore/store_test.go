package statestore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Get(ctx, KeyToken)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, KeyToken, "abc"))
	value, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, "abc", value)

	// A fresh store over the same dir must see the written value.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	value, err = reopened.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, "abc", value)

	require.NoError(t, reopened.Delete(ctx, KeyToken))
	_, err = reopened.Get(ctx, KeyToken)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client, "stockroom")

	_, err := store.Get(ctx, KeyCart)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, KeyCart, `[{"productId":"p1"}]`))
	value, err := store.Get(ctx, KeyCart)
	require.NoError(t, err)
	require.Equal(t, `[{"productId":"p1"}]`, value)

	require.NoError(t, store.Delete(ctx, KeyCart))
	_, err = store.Get(ctx, KeyCart)
	require.ErrorIs(t, err, ErrNotFound)
}
