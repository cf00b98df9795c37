package limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteLimiterBuckets(t *testing.T) {
	l := NewRouteLimiter().AddBuckets(BucketRule{
		Key:          "/api/notes",
		FillInterval: time.Hour,
		Capacity:     2,
		Quantum:      1,
	})

	bucket, ok := l.GetBucket("/api/notes")
	require.True(t, ok)
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))

	// 重复添加不会重置令牌桶
	l.AddBuckets(BucketRule{Key: "/api/notes", FillInterval: time.Hour, Capacity: 5, Quantum: 1})
	again, _ := l.GetBucket("/api/notes")
	assert.Same(t, bucket, again)

	_, ok = l.GetBucket("/api/notes/:id")
	assert.False(t, ok)
}
