package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "token", "abc123"))
	v, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc123", v)

	require.NoError(t, s.Delete(ctx, "token", "user"))
	_, ok, _ = s.Get(ctx, "token")
	assert.False(t, ok)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	_, ok, err := s.Get(ctx, "draft")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "draft", `{"title":"x"}`))

	// Keys land under the application prefix.
	assert.True(t, mr.Exists("auctionhub:draft"))

	v, ok, err := s.Get(ctx, "draft")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"title":"x"}`, v)

	require.NoError(t, s.Delete(ctx, "draft"))
	assert.False(t, mr.Exists("auctionhub:draft"))
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	found, err := GetJSON(ctx, s, "p", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, s, "p", payload{Name: "rolex", Count: 3}))

	var got payload
	found, err = GetJSON(ctx, s, "p", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "rolex", Count: 3}, got)
}
