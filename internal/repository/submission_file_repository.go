package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"lesson_quiz_backend/internal/model"
	"lesson_quiz_backend/pkg/logger"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileSubmissionRepository 以 JSON 数组形式保存在单个文件中。
// 进程内写入串行化，文件通过临时文件+重命名整体替换；多进程同时写仍可能丢记录。
type FileSubmissionRepository struct {
	Path string
	mu   sync.Mutex
}

func NewFileSubmissionRepository(path string) *FileSubmissionRepository {
	return &FileSubmissionRepository{Path: path}
}

func (r *FileSubmissionRepository) Backend() string { return "file" }

func (r *FileSubmissionRepository) Append(ctx context.Context, submission *model.Submission) error {
	encoded, err := json.Marshal(submission)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	entries := r.readEntries()
	entries = append(entries, encoded)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(r.Path, data)
}

// readEntries 文件不存在或内容损坏时从空数组开始
func (r *FileSubmissionRepository) readEntries() []json.RawMessage {
	raw, err := os.ReadFile(r.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.Warn("Could not read submissions file", zap.String("path", r.Path), zap.Error(err))
		}
		return []json.RawMessage{}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []json.RawMessage{}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Log.Warn("Submissions file is not a JSON array, starting over", zap.String("path", r.Path), zap.Error(err))
		return []json.RawMessage{}
	}
	return entries
}

func (r *FileSubmissionRepository) Ping(ctx context.Context) error {
	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".ping-*")
	if err != nil {
		return err
	}
	probe.Close()
	return os.Remove(probe.Name())
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
