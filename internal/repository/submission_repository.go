package repository

import (
	"context"
	"lesson_quiz_backend/internal/model"
)

// SubmissionRepository 提交记录的追加式存储
type SubmissionRepository interface {
	Append(ctx context.Context, submission *model.Submission) error
	Ping(ctx context.Context) error
	Backend() string
}
