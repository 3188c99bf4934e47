package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3 stores uploads in an S3-compatible object store and returns public
// object URLs as references.
type S3 struct {
	client   *minio.Client
	endpoint string
	bucket   string
	folder   string
	secure   bool
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Folder    string
	UseSSL    bool
}

func NewS3(cfg S3Config) (*S3, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object storage client: %w", err)
	}
	return &S3{
		client:   client,
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		folder:   cfg.Folder,
		secure:   cfg.UseSSL,
	}, nil
}

func (s *S3) Save(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	object := path.Join(s.folder, filename)
	_, err := s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("store object %s: %w", object, err)
	}
	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, object), nil
}
