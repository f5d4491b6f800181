// Package assetstore uploads processed image buffers to object storage and
// returns retrievable URLs. Placeholder references are never uploaded and never
// removed; they stand in for missing or unprocessable images.
package assetstore

import (
	"context"
	"strings"
)

// Placeholder asset references, used when no image is supplied or processing
// fails. They point at a fixed static asset, not at stored objects.
const (
	PlaceholderPhotoURL     = "/placeholder.svg?height=200&width=150"
	PlaceholderSignatureURL = "/placeholder.svg?height=80&width=300"
)

// Store uploads and removes image assets.
type Store interface {
	// Put stores data under key and returns the URL the asset is retrievable at.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Remove deletes the asset a previously returned URL points at. Removing a
	// missing asset is not an error.
	Remove(ctx context.Context, url string) error
}

// IsPlaceholder reports whether url is a placeholder reference rather than a
// stored asset.
func IsPlaceholder(url string) bool {
	return url == "" || strings.HasPrefix(url, "/placeholder.svg")
}
