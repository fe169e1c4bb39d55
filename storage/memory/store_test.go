package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/go-oauth2-client/storage"
	"github.com/jrsteele09/go-oauth2-client/storage/memory"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Name   string
	Scopes []string
}

func (s snapshot) Clone() snapshot {
	s.Scopes = append([]string(nil), s.Scopes...)
	return s
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("set get has drop", func(t *testing.T) {
		s := memory.New[string]()

		_, replaced, err := s.Set(ctx, "k", "v1")
		require.NoError(t, err)
		require.False(t, replaced)

		prev, replaced, err := s.Set(ctx, "k", "v2")
		require.NoError(t, err)
		require.True(t, replaced)
		require.Equal(t, "v1", prev)

		v, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "v2", v)

		has, err := s.Has(ctx, "k")
		require.NoError(t, err)
		require.True(t, has)

		v, err = s.Drop(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "v2", v)

		_, err = s.Drop(ctx, "k")
		require.ErrorIs(t, err, storage.ErrNotFound)
		_, err = s.Get(ctx, "k")
		require.ErrorIs(t, err, storage.ErrNotFound)
		has, err = s.Has(ctx, "k")
		require.NoError(t, err)
		require.False(t, has)
		require.Equal(t, 0, s.Len())
	})

	t.Run("empty key", func(t *testing.T) {
		s := memory.New[string]()
		_, _, err := s.Set(ctx, "", "v")
		require.ErrorIs(t, err, storage.ErrEmptyKey)
		_, err = s.Get(ctx, "")
		require.ErrorIs(t, err, storage.ErrEmptyKey)
		_, err = s.Drop(ctx, "")
		require.ErrorIs(t, err, storage.ErrEmptyKey)
		_, err = s.Has(ctx, "")
		require.ErrorIs(t, err, storage.ErrEmptyKey)
	})

	t.Run("values are copied", func(t *testing.T) {
		s := memory.New[snapshot]()
		orig := snapshot{Name: "a", Scopes: []string{"x"}}
		_, _, err := s.Set(ctx, "k", orig)
		require.NoError(t, err)

		orig.Scopes[0] = "mutated"
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []string{"x"}, got.Scopes)

		got.Scopes[0] = "mutated"
		again, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []string{"x"}, again.Scopes)
	})
}

func TestStore_ConcurrentDropIsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	s := memory.New[string]()
	_, _, err := s.Set(ctx, "state", "client")
	require.NoError(t, err)

	var wins, misses atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Drop(ctx, "state"); err == nil {
				wins.Add(1)
			} else if err == storage.ErrNotFound {
				misses.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
	require.Equal(t, int32(63), misses.Load())
}
