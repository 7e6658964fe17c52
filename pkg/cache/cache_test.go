package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/market/pkg/cache"
)

func TestStore_WithoutClientIsNoop(t *testing.T) {
	ctx := context.Background()
	s := cache.New(nil, "market:")

	assert.False(t, s.Available())
	require.NoError(t, s.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	assert.False(t, s.Get(ctx, "k", &out))
	assert.NoError(t, s.Del(ctx, "k"))
	assert.NoError(t, s.Close())
}

func TestConnect_UnreachableReturnsUsableStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := cache.Connect(ctx, "127.0.0.1:1", "", "market:")
	assert.Error(t, err)
	require.NotNil(t, s)
	assert.False(t, s.Available())
}

func TestNilStore(t *testing.T) {
	var s *cache.Store
	assert.False(t, s.Available())
}
