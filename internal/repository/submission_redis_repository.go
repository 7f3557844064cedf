package repository

import (
	"context"
	"encoding/json"
	"lesson_quiz_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

// RedisSubmissionRepository 以定长列表保存最近的提交，LPUSH+LTRIM 在同一事务内执行
type RedisSubmissionRepository struct {
	Redis  *redis.Client
	Key    string
	MaxLen int64
}

func NewRedisSubmissionRepository(rdb *redis.Client, key string, maxLen int64) *RedisSubmissionRepository {
	return &RedisSubmissionRepository{Redis: rdb, Key: key, MaxLen: maxLen}
}

func (r *RedisSubmissionRepository) Backend() string { return "redis" }

func (r *RedisSubmissionRepository) Append(ctx context.Context, submission *model.Submission) error {
	data, err := json.Marshal(submission)
	if err != nil {
		return err
	}

	_, err = r.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.Key, data)
		if r.MaxLen > 0 {
			pipe.LTrim(ctx, r.Key, 0, r.MaxLen-1)
		}
		return nil
	})
	return err
}

func (r *RedisSubmissionRepository) Ping(ctx context.Context) error {
	return r.Redis.Ping(ctx).Err()
}
