package repository

import (
	"context"
	"mock_interview_backend/internal/model"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*QuestionCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewQuestionCache(client, time.Hour), mr
}

func TestQuestionCache_SetGet(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	questions := []model.Question{
		{Position: 1, Text: "Tell me about yourself", Type: model.QuestionBehavioral, ExpectedDuration: 120},
	}
	require.NoError(t, cache.Set(ctx, "iv-1", questions))
	assert.True(t, mr.Exists("interview:questions:iv-1"))
	assert.Equal(t, time.Hour, mr.TTL("interview:questions:iv-1"))

	got, ok, err := cache.Get(ctx, "iv-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Tell me about yourself", got[0].Text)

	require.NoError(t, cache.Delete(ctx, "iv-1"))
	_, ok, err = cache.Get(ctx, "iv-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQuestionCache_Expires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "iv-2", []model.Question{{Text: "q"}}))
	mr.FastForward(2 * time.Hour)

	_, ok, err := cache.Get(ctx, "iv-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQuestionCache_Disabled(t *testing.T) {
	var cache *QuestionCache
	ctx := context.Background()

	assert.False(t, cache.Enabled())
	assert.NoError(t, cache.Set(ctx, "x", nil))
	assert.NoError(t, cache.Ping(ctx))
	got, ok, err := cache.Get(ctx, "x")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}
