package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mock_interview_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

const questionCacheKeyPrefix = "interview:questions:"

// QuestionCache 缓存为某场面试生成的题目，开始面试时优先取用。
// Client 为 nil 时所有操作为空操作。
type QuestionCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewQuestionCache(client *redis.Client, ttl time.Duration) *QuestionCache {
	return &QuestionCache{Client: client, TTL: ttl}
}

func (c *QuestionCache) Enabled() bool {
	return c != nil && c.Client != nil
}

func questionCacheKey(interviewID string) string {
	return questionCacheKeyPrefix + interviewID
}

func (c *QuestionCache) Set(ctx context.Context, interviewID string, questions []model.Question) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	return c.Client.Set(ctx, questionCacheKey(interviewID), data, c.TTL).Err()
}

// Get 未命中时返回 nil, false, nil
func (c *QuestionCache) Get(ctx context.Context, interviewID string) ([]model.Question, bool, error) {
	if !c.Enabled() {
		return nil, false, nil
	}

	data, err := c.Client.Get(ctx, questionCacheKey(interviewID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, false, fmt.Errorf("unmarshal questions: %w", err)
	}
	return questions, true, nil
}

func (c *QuestionCache) Delete(ctx context.Context, interviewID string) error {
	if !c.Enabled() {
		return nil
	}
	return c.Client.Del(ctx, questionCacheKey(interviewID)).Err()
}

func (c *QuestionCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.Client.Ping(ctx).Err()
}
