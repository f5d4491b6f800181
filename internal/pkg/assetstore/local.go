package assetstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/logger"
)

// LocalStore saves assets on the local filesystem and serves them through the
// server's static /uploads route.
type LocalStore struct {
	basePath string // root directory where files are written
	baseURL  string // URL prefix the directory is served under
}

// NewLocalStore creates a LocalStore rooted at basePath. The directory is
// created if absent.
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Put writes data under key and returns the URL it is served at.
func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("asset key is required")
	}

	// Keys are flat; strip any path component a caller may have smuggled in.
	filename := filepath.Base(key)
	dstPath := filepath.Join(s.basePath, filename)

	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write asset %s: %w", filename, err)
	}

	url := s.baseURL + "/" + filename
	logger.Info().Str("key", filename).Str("url", url).Msg("Asset stored")
	return url, nil
}

// Remove deletes the file a previously returned URL points at. A missing file
// is treated as a successful delete.
func (s *LocalStore) Remove(_ context.Context, url string) error {
	if url == "" {
		return nil
	}

	filename := filepath.Base(url)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid asset url: %s", url)
	}

	physicalPath := filepath.Join(s.basePath, filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Asset to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("Asset deleted")
	return nil
}
