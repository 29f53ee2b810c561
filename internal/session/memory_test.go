package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)

		s, err := store.Create(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, s.ID)

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
	})

	t.Run("put overwrites", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)

		s, err := store.Create(ctx)
		require.NoError(t, err)

		s.ReturnURL = "http://remote/cb"
		require.NoError(t, store.Put(ctx, s))

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "http://remote/cb", got.ReturnURL)
	})

	t.Run("unknown id", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)

		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)

		s, err := store.Create(ctx)
		require.NoError(t, err)
		require.NoError(t, store.Delete(ctx, s.ID))

		_, err = store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expired session is gone", func(t *testing.T) {
		store := NewMemoryStore(10 * time.Millisecond)

		s, err := store.Create(ctx)
		require.NoError(t, err)

		time.Sleep(30 * time.Millisecond)

		_, err = store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("sessions do not leak across ids", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)

		a, err := store.Create(ctx)
		require.NoError(t, err)
		b, err := store.Create(ctx)
		require.NoError(t, err)

		a.ReturnURL = "http://a/cb"
		b.ReturnURL = "http://b/cb"
		require.NoError(t, store.Put(ctx, a))
		require.NoError(t, store.Put(ctx, b))

		gotA, err := store.Get(ctx, a.ID)
		require.NoError(t, err)
		gotB, err := store.Get(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "http://a/cb", gotA.ReturnURL)
		assert.Equal(t, "http://b/cb", gotB.ReturnURL)
	})

	t.Run("concurrent access", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s, err := store.Create(ctx)
				assert.NoError(t, err)
				s.ReturnURL = "http://remote/cb"
				assert.NoError(t, store.Put(ctx, s))
				_, err = store.Get(ctx, s.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	})
}
