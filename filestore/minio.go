package filestore

import (
	"context"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const presignExpiry = 15 * time.Minute

// MinioConfig holds the connection settings of an S3-compatible backend.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Presign serves objects through short-lived public URLs instead of
	// streaming them through the admin process.
	Presign bool
}

// MinioStore keeps objects in one bucket of an S3-compatible service.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	presign bool
}

func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, presign: cfg.Presign}, nil
}

func (s *MinioStore) Get(ctx context.Context, key string) (*File, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	file := &File{
		Filename:    path.Base(key),
		ContentType: info.ContentType,
		Size:        info.Size,
	}

	if s.presign {
		u, err := s.client.PresignedGetObject(ctx, s.bucket, key, presignExpiry, nil)
		if err != nil {
			return nil, err
		}
		file.PublicURL = u.String()
		return file, nil
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	file.Stream = obj
	return file, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, contentType string, size int64, content io.Reader) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
