package gemcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconick/hiddengems/internal/core"
)

func TestPutGet(t *testing.T) {
	c := New(4, time.Minute)

	records := []core.Record{{Identifier: "a"}, {Identifier: "b"}}
	c.Put(BulkPoolKey, records)

	got, ok := c.Get(BulkPoolKey)
	require.True(t, ok)
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Identifier)
}

func TestGetMiss(t *testing.T) {
	c := New(4, time.Minute)

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(4, 30*time.Millisecond)

	c.Put(BulkPoolKey, []core.Record{{Identifier: "a"}})
	_, ok := c.Get(BulkPoolKey)
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)

	_, ok = c.Get(BulkPoolKey)
	assert.False(t, ok, "entry should expire after the TTL")
}

func TestRemove(t *testing.T) {
	c := New(4, time.Minute)

	c.Put(BulkPoolKey, []core.Record{{Identifier: "a"}})
	c.Remove(BulkPoolKey)

	_, ok := c.Get(BulkPoolKey)
	assert.False(t, ok)
}

func TestOverwrite(t *testing.T) {
	c := New(4, time.Minute)

	c.Put(BulkPoolKey, []core.Record{{Identifier: "old"}})
	c.Put(BulkPoolKey, []core.Record{{Identifier: "new"}})

	got, ok := c.Get(BulkPoolKey)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Identifier)
}

func TestDefaults(t *testing.T) {
	c := New(0, 0)
	assert.Equal(t, DefaultTTL, c.TTL())

	c.Put(BulkPoolKey, nil)
	assert.Equal(t, 1, c.Len())
}
