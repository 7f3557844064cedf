package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lesson_quiz_backend/internal/config"
	"lesson_quiz_backend/internal/model"
	"lesson_quiz_backend/pkg/database"
	"lesson_quiz_backend/pkg/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSubmission(id int64) *model.Submission {
	return &model.Submission{
		ID:         id,
		CreatedAt:  time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC),
		Content:    "Water evaporates from oceans.",
		Simplified: "<p>Water evaporates from oceans.</p>",
		Questions: []model.Question{
			{Type: model.QuestionMCQ, Question: "q1", Options: []string{"Water", "Oceans"}, CorrectIndex: 1, Hint: "h", Answer: "a"},
			{Type: model.QuestionTrueFalse, Question: "q2", CorrectAnswer: true, Hint: "h", Answer: "a"},
		},
	}
}

func TestFileRepositoryAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "submissions.json")
	repo := NewFileSubmissionRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, sampleSubmission(1)))
	require.NoError(t, repo.Append(ctx, sampleSubmission(2)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var saved []model.Submission
	require.NoError(t, json.Unmarshal(raw, &saved))
	require.Len(t, saved, 2)
	assert.Equal(t, int64(1), saved[0].ID)
	assert.Equal(t, int64(2), saved[1].ID)
	assert.Equal(t, 1, saved[0].Questions[0].CorrectIndex)
	assert.True(t, saved[1].Questions[1].CorrectAnswer)
}

func TestFileRepositoryRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	repo := NewFileSubmissionRepository(path)
	require.NoError(t, repo.Append(context.Background(), sampleSubmission(7)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved []model.Submission
	require.NoError(t, json.Unmarshal(raw, &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, int64(7), saved[0].ID)
}

func TestFileRepositoryHonoursCancelledContext(t *testing.T) {
	repo := NewFileSubmissionRepository(filepath.Join(t.TempDir(), "submissions.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Append(ctx, sampleSubmission(1)), context.Canceled)
	assert.NoError(t, repo.Ping(context.Background()))
	assert.Equal(t, "file", repo.Backend())
}

func TestDBRepositoryAppendAndFind(t *testing.T) {
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "submissions.db"),
	}, SubmissionModels()...)
	require.NoError(t, err)

	repo := NewDBSubmissionRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Ping(ctx))

	want := sampleSubmission(1792398600000)
	require.NoError(t, repo.Append(ctx, want))
	assert.Error(t, repo.Append(ctx, want), "duplicate id")

	got, err := repo.FindByID(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Content, got.Content)
	assert.Equal(t, want.Simplified, got.Simplified)
	assert.Equal(t, want.Questions, got.Questions)
	assert.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Second)
}

func TestRedisRepositoryKeepsNewestEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	repo := NewRedisSubmissionRepository(rdb, "lesson_quiz:submissions", 2)
	ctx := context.Background()
	require.NoError(t, repo.Ping(ctx))

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, repo.Append(ctx, sampleSubmission(id)))
	}

	entries, err := mr.List("lesson_quiz:submissions")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var newest model.Submission
	require.NoError(t, json.Unmarshal([]byte(entries[0]), &newest))
	assert.Equal(t, int64(3), newest.ID)
}

func TestRedisRepositoryReportsOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	repo := NewRedisSubmissionRepository(rdb, "k", 10)
	assert.Error(t, repo.Append(context.Background(), sampleSubmission(1)))
	assert.Error(t, repo.Ping(context.Background()))
}

func TestObjectRepositoryWritesOneObjectPerSubmission(t *testing.T) {
	root := t.TempDir()
	repo := NewObjectSubmissionRepository(storage.NewLocalProvider(root))
	submission := sampleSubmission(42)

	assert.Equal(t, "submissions/2026/10/19/42.json", ObjectKey(submission))
	require.NoError(t, repo.Append(context.Background(), submission))
	assert.NoError(t, repo.Ping(context.Background()))
	assert.Equal(t, "object:local", repo.Backend())

	raw, err := os.ReadFile(filepath.Join(root, "submissions", "2026", "10", "19", "42.json"))
	require.NoError(t, err)

	var saved model.Submission
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, submission.Questions, saved.Questions)
}
