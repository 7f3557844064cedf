package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"lesson_quiz_backend/internal/model"
	"lesson_quiz_backend/internal/util"
	"lesson_quiz_backend/pkg/storage"
)

// ObjectSubmissionRepository 每条记录写成一个独立对象，天然只追加
type ObjectSubmissionRepository struct {
	Provider storage.Provider
}

func NewObjectSubmissionRepository(provider storage.Provider) *ObjectSubmissionRepository {
	return &ObjectSubmissionRepository{Provider: provider}
}

func (r *ObjectSubmissionRepository) Backend() string {
	return "object:" + r.Provider.Name()
}

// ObjectKey submissions/YYYY/MM/DD/<id>.json
func ObjectKey(submission *model.Submission) string {
	return fmt.Sprintf("submissions/%s/%d.json", submission.CreatedAt.UTC().Format("2006/01/02"), submission.ID)
}

func (r *ObjectSubmissionRepository) Append(ctx context.Context, submission *model.Submission) error {
	data, err := json.Marshal(submission)
	if err != nil {
		return err
	}

	_, err = r.Provider.Upload(ctx, ObjectKey(submission), bytes.NewReader(data), int64(len(data)), util.MimeJSON)
	return err
}

type bucketChecker interface {
	BucketExists(ctx context.Context) error
}

func (r *ObjectSubmissionRepository) Ping(ctx context.Context) error {
	if checker, ok := r.Provider.(bucketChecker); ok {
		return checker.BucketExists(ctx)
	}
	return nil
}
