package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpirable_AddGet(t *testing.T) {
	c := New[string, int](10, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestExpirable_EvictsOldest(t *testing.T) {
	c := New[int, string](2, time.Minute)

	c.Add(1, "one")
	c.Add(2, "two")
	c.Add(3, "three")

	_, ok := c.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestExpirable_Expires(t *testing.T) {
	c := New[string, int](10, 20*time.Millisecond)
	c.Add("a", 1)

	require.Eventually(t, func() bool {
		_, ok := c.Get("a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestExpirable_RemoveAndPurge(t *testing.T) {
	c := New[string, int](10, time.Minute)
	c.Add("a:1", 1)
	c.Add("a:2", 2)
	c.Add("b:1", 3)

	c.Remove("b:1")
	_, ok := c.Get("b:1")
	assert.False(t, ok)

	removed := c.RemoveFunc(func(k string) bool { return k[0] == 'a' })
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, c.Len())

	c.Add("c", 1)
	c.Purge()
	assert.Equal(t, 0, c.Len())
}
