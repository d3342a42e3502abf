package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c, err := New[string, int](4)
	require.NoError(t, err)

	c.Set("a", 1, time.Minute)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c, err := New[string, string](4)
	require.NoError(t, err)

	c.Set("k", "v", 10*time.Millisecond)
	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c, err := New[string, int](4)
	require.NoError(t, err)

	c.Set("k", 7, time.Minute)
	c.Delete("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestEvictsBeyondCapacity(t *testing.T) {
	c, err := New[int, int](2)
	require.NoError(t, err)

	c.Set(1, 1, time.Minute)
	c.Set(2, 2, time.Minute)
	c.Set(3, 3, time.Minute)

	_, ok := c.Get(1)
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = c.Get(3)
	assert.True(t, ok)
}
