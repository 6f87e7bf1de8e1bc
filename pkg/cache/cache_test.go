package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "learning:3:TikTok", LearningKey(3, "TikTok"))
	assert.Equal(t, "pattern_stats:0", StatsKey(0))
}

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	c := NewService(nil, 0)

	assert.False(t, c.IsAvailable())
	assert.ErrorIs(t, c.Ping(ctx), ErrUnavailable)

	var dest map[string]any
	assert.ErrorIs(t, c.GetLearningData(ctx, 1, "TikTok", &dest), ErrUnavailable)
	assert.NoError(t, c.SetLearningData(ctx, 1, "TikTok", map[string]any{"a": 1}))
	assert.NoError(t, c.InvalidateLearning(ctx, 1, "TikTok"))

	ok, err := c.Exists(ctx, "x")
	assert.NoError(t, err)
	assert.False(t, ok)
}
