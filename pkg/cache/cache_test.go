package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Stop()

	c.Set("dashboard:overview", 42)

	got, ok := c.Get("dashboard:overview")
	assert.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestCache_GetMissing(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Stop()

	got, ok := c.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_ExpiredEntryNotReturned(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Stop()

	c.SetWithTTL("stats", "stale", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	got, ok := c.Get("stats")
	assert.False(t, ok)
	assert.Nil(t, got)

	// Lazy expiry also removes the entry
	assert.Equal(t, 0, c.Len())
}

func TestCache_JanitorSweepsExpired(t *testing.T) {
	c := New(time.Minute, 20*time.Millisecond)
	defer c.Stop()

	c.SetWithTTL("a", 1, 10*time.Millisecond)
	c.SetWithTTL("b", 2, time.Minute)

	assert.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 10*time.Millisecond)

	got, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestCache_Overwrite(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Stop()

	c.Set("k", "first")
	c.Set("k", "second")

	got, _ := c.Get("k")
	assert.Equal(t, "second", got)
}

func TestCache_DeleteAndFlush(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Flush()
	assert.Equal(t, 0, c.Len())
}
