package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"mediacatalog/logger"
	"mediacatalog/models"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOConfig holds the connection settings for an S3-compatible store.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// MinIOStore adapts an S3-compatible object store to the BlobStore interface.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore builds a MinIOStore from explicit configuration.
func NewMinIOStore(cfg MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, models.WrapStorageError("failed to create object store client", err)
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

// EnsureContainer creates the bucket when it does not exist yet.
func (s *MinIOStore) EnsureContainer(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return models.WrapStorageError("failed to check bucket", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return models.WrapStorageError("failed to create bucket", err)
	}

	logger.Info("Created storage bucket %q", s.bucket)
	return nil
}

// Put uploads data under key with the given content type and reads back the
// store-assigned entity tag.
func (s *MinIOStore) Put(ctx context.Context, key string, data []byte, contentType string) (PutResult, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return PutResult{}, models.WrapStorageError(fmt.Sprintf("failed to upload object %q", key), err)
	}

	return PutResult{
		URL:          s.objectURL(key),
		IntegrityTag: info.ETag,
	}, nil
}

// Delete removes the object; missing objects are a no-op.
func (s *MinIOStore) Delete(ctx context.Context, key string) error {
	exists, err := s.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return models.WrapStorageError(fmt.Sprintf("failed to delete object %q", key), err)
	}
	return nil
}

// Exists reports whether the object is stored.
func (s *MinIOStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return false, nil
		}
		return false, models.WrapStorageError(fmt.Sprintf("failed to stat object %q", key), err)
	}
	return true, nil
}

// SignedURL returns a presigned read-only URL valid for ttl.
func (s *MinIOStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	exists, err := s.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", models.NewCatalogError(models.ErrNotFound,
			fmt.Sprintf("object %q does not exist in the blob store", key))
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", models.WrapStorageError(fmt.Sprintf("failed to presign object %q", key), err)
	}
	return u.String(), nil
}

// List returns all object keys under prefix.
func (s *MinIOStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, models.WrapStorageError("failed to list objects", obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

func (s *MinIOStore) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
}
