// Package storage re-hosts generated images, since image API URLs expire.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"contentpilot/config"
	"contentpilot/logging"

	"github.com/google/uuid"
)

const maxImageBytes = 20 << 20

// ObjectStore is the subset of S3 used here.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType, cacheControl string) error
	PresignGet(ctx context.Context, bucket, key string, lifetime time.Duration) (string, error)
}

type ImageArchiveConfig struct {
	Bucket string
	Prefix string
	// PublicBaseURL, when set, is used instead of presigned URLs.
	PublicBaseURL string
	PresignTTL    time.Duration
	HTTPClient    *http.Client
}

// ImageArchive copies a remote image into a bucket.
type ImageArchive struct {
	store      ObjectStore
	bucket     string
	prefix     string
	publicBase string
	ttl        time.Duration
	httpClient *http.Client
	newID      func() string
}

func NewImageArchive(store ObjectStore, cfg ImageArchiveConfig) *ImageArchive {
	prefix := cfg.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = config.DefaultPresignTTL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &ImageArchive{
		store:      store,
		bucket:     cfg.Bucket,
		prefix:     prefix,
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
		ttl:        ttl,
		httpClient: client,
		newID:      func() string { return uuid.New().String() },
	}
}

// PersistImage downloads sourceURL, stores it and returns the new URL.
func (a *ImageArchive) PersistImage(ctx context.Context, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create image request: %w", err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	key := a.prefix + "images/" + a.newID() + extensionFor(contentType, sourceURL)

	if err := a.store.Put(ctx, a.bucket, key, bytes.NewReader(data), contentType, "public, max-age=31536000"); err != nil {
		return "", err
	}
	logging.Debugf("stored featured image at s3://%s/%s (%d bytes)", a.bucket, key, len(data))

	if a.publicBase != "" {
		return a.publicBase + "/" + key, nil
	}
	return a.store.PresignGet(ctx, a.bucket, key, a.ttl)
}

func extensionFor(contentType, sourceURL string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "image/png":
			return ".png"
		case "image/jpeg":
			return ".jpg"
		case "image/webp":
			return ".webp"
		case "image/gif":
			return ".gif"
		}
	}
	if u := strings.SplitN(sourceURL, "?", 2)[0]; path.Ext(u) != "" {
		return path.Ext(u)
	}
	return ".png"
}
