// Package blob reads product images from local files or S3 and stores
// uploaded images for the fake API.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotFound is returned when a key or file does not exist.
var ErrNotFound = errors.New("blob not found")

// Source opens an image by reference.
type Source interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Store is a Source that also accepts writes under a relative key.
type Store interface {
	Source
	Put(ctx context.Context, key string, r io.Reader) error
}

// Router picks a source by reference scheme: s3://bucket/key goes to the
// S3 source, anything else to the local one.
type Router struct {
	Local Source
	S3    Source
}

func (r Router) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("empty image reference")
	}
	if strings.HasPrefix(ref, "s3://") {
		if r.S3 == nil {
			return nil, fmt.Errorf("no s3 source configured for %s", ref)
		}
		return r.S3.Open(ctx, ref)
	}
	if r.Local == nil {
		return nil, fmt.Errorf("no local source configured for %s", ref)
	}
	return r.Local.Open(ctx, ref)
}

// sanitizeKey keeps a stored key inside its root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("empty key")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid key %q", key)
		}
	}
	return key, nil
}
