package assetstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/logger"
)

// MinioConfig holds connection settings for an S3-compatible object store.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// BaseURL overrides the URL prefix returned for stored objects. When empty,
	// URLs are composed from the endpoint and bucket.
	BaseURL string
}

// MinioStore stores assets in an S3-compatible bucket.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioStore connects to the object store and ensures the bucket exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info().Str("bucket", cfg.Bucket).Msg("Asset bucket created")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Put uploads data under key and returns its public URL.
func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("asset key is required")
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload asset %s: %w", key, err)
	}

	assetURL := s.baseURL + "/" + key
	logger.Info().Str("bucket", s.bucket).Str("key", key).Msg("Asset uploaded")
	return assetURL, nil
}

// Remove deletes the object a previously returned URL points at. A missing
// object is treated as a successful delete.
func (s *MinioStore) Remove(ctx context.Context, assetURL string) error {
	if assetURL == "" {
		return nil
	}

	key, err := s.objectKey(assetURL)
	if err != nil {
		return err
	}

	err = s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		var respErr minio.ErrorResponse
		if errors.As(err, &respErr) && respErr.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to delete asset %s: %w", key, err)
	}

	logger.Info().Str("bucket", s.bucket).Str("key", key).Msg("Asset deleted")
	return nil
}

// objectKey extracts the object key from a URL this store produced.
func (s *MinioStore) objectKey(assetURL string) (string, error) {
	u, err := url.Parse(assetURL)
	if err != nil {
		return "", fmt.Errorf("invalid asset url %s: %w", assetURL, err)
	}
	key := path.Base(u.Path)
	if key == "" || key == "." || key == "/" {
		return "", fmt.Errorf("invalid asset url: %s", assetURL)
	}
	return key, nil
}
