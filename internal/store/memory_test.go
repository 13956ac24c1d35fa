package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "forum_posts", []byte(`[{"id":"p1"}]`)))

	value, err := s.Get(ctx, "forum_posts")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"p1"}]`), value)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	value, err := s.Get(ctx, "no-such-key")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "users", []byte(`[]`)))
	require.NoError(t, s.Delete(ctx, "users"))

	value, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.Nil(t, value)

	// Deleting a missing key is a no-op
	require.NoError(t, s.Delete(ctx, "users"))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	original := []byte(`[1,2,3]`)
	require.NoError(t, s.Set(ctx, "k", original))
	original[0] = 'X'

	stored, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), stored)

	// Mutating the returned slice must not leak back into the store
	stored[0] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), again)
}

func TestNotificationKey(t *testing.T) {
	assert.Equal(t, "notifications:user-1", NotificationKey("user-1"))
	assert.NotEqual(t, NotificationKey("a"), NotificationKey("b"))
}
