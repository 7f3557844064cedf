package storage

import (
	"context"
	"fmt"
	"io"
	"lesson_quiz_backend/internal/config"
	"os"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Provider 定义通用对象存储接口
type Provider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
	Name() string
}

// LocalProvider 本地存储实现
type LocalProvider struct {
	Root string
}

func NewLocalProvider(root string) *LocalProvider {
	return &LocalProvider{Root: root}
}

func (p *LocalProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Root, filepath.FromSlash(filename))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	// 先写临时文件再重命名，避免读到半个对象
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", err
	}

	return p.GetURL(filename), nil
}

func (p *LocalProvider) Delete(ctx context.Context, filename string) error {
	return os.Remove(filepath.Join(p.Root, filepath.FromSlash(filename)))
}

func (p *LocalProvider) GetURL(filename string) string {
	return "/objects/" + filename
}

func (p *LocalProvider) Name() string { return "local" }

// MinioProvider MinIO存储实现
type MinioProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioProvider(cfg *config.StorageConfig) (*MinioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioProvider{Config: cfg, Client: client}, nil
}

func (p *MinioProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioProvider) Delete(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioProvider) GetURL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

func (p *MinioProvider) Name() string { return "minio" }

// BucketExists 供健康检查使用
func (p *MinioProvider) BucketExists(ctx context.Context) error {
	ok, err := p.Client.BucketExists(ctx, p.Config.MinioBucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("minio bucket %q does not exist", p.Config.MinioBucket)
	}
	return nil
}

// OSSProvider 阿里云OSS存储实现
type OSSProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSProvider(cfg *config.StorageConfig) (*OSSProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSProvider{Config: cfg, Client: client}, nil
}

func (p *OSSProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}

	if err := bucket.PutObject(filename, reader, oss.ContentType(contentType)); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *OSSProvider) Delete(ctx context.Context, filename string) error {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(filename)
}

func (p *OSSProvider) GetURL(filename string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, filename)
}

func (p *OSSProvider) Name() string { return "oss" }

// NewProvider 按 storage.type 选择实现，远端客户端创建失败时回退到本地存储
func NewProvider(cfg *config.StorageConfig) (Provider, error) {
	switch cfg.Type {
	case "minio":
		p, err := NewMinioProvider(cfg)
		if err == nil {
			return p, nil
		}
		return NewLocalProvider(cfg.LocalPath), fmt.Errorf("minio client: %w", err)
	case "oss":
		p, err := NewOSSProvider(cfg)
		if err == nil {
			return p, nil
		}
		return NewLocalProvider(cfg.LocalPath), fmt.Errorf("oss client: %w", err)
	}
	return NewLocalProvider(cfg.LocalPath), nil
}
