package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lesson_quiz_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProviderUploadAndDelete(t *testing.T) {
	root := t.TempDir()
	p := NewLocalProvider(root)
	ctx := context.Background()

	url, err := p.Upload(ctx, "submissions/2026/10/19/1.json", strings.NewReader(`{"id":1}`), 8, "application/json")
	require.NoError(t, err)
	assert.Equal(t, "/objects/submissions/2026/10/19/1.json", url)

	dst := filepath.Join(root, "submissions", "2026", "10", "19", "1.json")
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")

	require.NoError(t, p.Delete(ctx, "submissions/2026/10/19/1.json"))
	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestNewProviderDefaultsToLocal(t *testing.T) {
	p, err := NewProvider(&config.StorageConfig{Type: "local", LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "local", p.Name())

	p, err = NewProvider(&config.StorageConfig{Type: "", LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalProvider{}, p)
}

func TestNewProviderMinio(t *testing.T) {
	p, err := NewProvider(&config.StorageConfig{
		Type:          "minio",
		MinioEndpoint: "127.0.0.1:9000",
		MinioAccessID: "minio",
		MinioSecret:   "minio123",
		MinioBucket:   "lesson-quiz",
	})
	require.NoError(t, err)
	assert.Equal(t, "minio", p.Name())
	assert.Equal(t, "/lesson-quiz/a.json", p.GetURL("a.json"))
}

func TestOSSProviderURL(t *testing.T) {
	p := &OSSProvider{Config: &config.StorageConfig{OSSBucket: "quiz", OSSEndpoint: "oss-cn-hangzhou.aliyuncs.com"}}
	assert.Equal(t, "https://quiz.oss-cn-hangzhou.aliyuncs.com/a.json", p.GetURL("a.json"))
	assert.Equal(t, "oss", p.Name())
}
