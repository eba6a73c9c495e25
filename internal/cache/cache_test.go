package cache

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/alucardavid/samplemed-blog/internal/metrics"
)

func TestStore_SetGetFlush(t *testing.T) {
	store := New(5 * time.Minute)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Set("key", []byte("value"))
	got, ok := store.Get("key")
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), got)

	store.Flush()
	_, ok = store.Get("key")
	assert.False(t, ok)
}

func TestStore_EntriesExpire(t *testing.T) {
	store := New(20 * time.Millisecond)

	store.Set("key", []byte("value"))
	time.Sleep(50 * time.Millisecond)

	_, ok := store.Get("key")
	assert.False(t, ok)
}

func TestStore_FlushIsCounted(t *testing.T) {
	store := New(5 * time.Minute)
	before := testutil.ToFloat64(metrics.CacheFlushesTotal)

	store.Flush()
	store.Flush()

	assert.Equal(t, before+2, testutil.ToFloat64(metrics.CacheFlushesTotal))
}

func TestStore_TTL(t *testing.T) {
	store := New(5 * time.Minute)
	assert.Equal(t, 5*time.Minute, store.TTL())
}
