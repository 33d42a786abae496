package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCounterWindows(t *testing.T) {
	now := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	m := newMemoryCounter()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	count, resetAt, _ := m.Hit(ctx, "a", time.Minute)
	assert.Equal(t, 1, count)
	assert.Equal(t, now.Add(time.Minute), resetAt)

	count, _, _ = m.Hit(ctx, "a", time.Minute)
	assert.Equal(t, 2, count)

	count, _, _ = m.Hit(ctx, "b", time.Minute)
	assert.Equal(t, 1, count, "keys are independent")

	now = now.Add(61 * time.Second)
	count, _, _ = m.Hit(ctx, "a", time.Minute)
	assert.Equal(t, 1, count, "window reset")

	now = now.Add(sweepInterval + time.Minute)
	_, _, _ = m.Hit(ctx, "c", time.Minute)
	assert.Len(t, m.buckets, 1, "expired buckets swept")
}
