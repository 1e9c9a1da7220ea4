package storage

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
)

// Bucket is the asset store adapter: it recognizes "our" public URLs, derives
// object keys from them, and issues best-effort deletes. Delete failures are
// logged and reported as false, never propagated — a failed cleanup must not
// fail the record mutation that triggered it.
type Bucket struct {
	store    ObjectStore
	name     string
	baseHost string
	basePath string // leading slash, no trailing slash; may be "/<bucket>"
	baseRaw  string
}

// NewBucket wraps store with URL handling rooted at publicBase, e.g.
// "https://media.shaadicloset.com/shaadicloset-media".
func NewBucket(store ObjectStore, name, publicBase string) (*Bucket, error) {
	u, err := url.Parse(strings.TrimRight(publicBase, "/"))
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid public base url %q", publicBase)
	}
	return &Bucket{
		store:    store,
		name:     name,
		baseHost: strings.ToLower(u.Host),
		basePath: u.Path,
		baseRaw:  u.String(),
	}, nil
}

// PublicURL returns the public URL for an object key.
func (b *Bucket) PublicURL(key string) string {
	return b.baseRaw + "/" + key
}

// IsManagedURL reports whether raw points into this bucket's public prefix.
// Externally pasted links and malformed URLs return false and must never be
// handed to a delete call.
func (b *Bucket) IsManagedURL(raw string) bool {
	_, err := b.KeyFromURL(raw)
	return err == nil
}

// KeyFromURL derives the object key from a managed public URL. Query strings
// (cache busters) and fragments are ignored; the path is percent-decoded, so
// an encoded URL resolves to the same key as its canonical form.
func (b *Bucket) KeyFromURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if strings.ToLower(u.Host) != b.baseHost {
		return "", fmt.Errorf("host mismatch")
	}
	prefix := b.basePath + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", fmt.Errorf("url outside managed prefix")
	}
	key := strings.TrimPrefix(u.Path, prefix)
	if key == "" {
		return "", fmt.Errorf("missing object path")
	}
	return key, nil
}

// DeleteByURL deletes the object behind a managed URL. Unmanaged URLs are a
// no-op returning false.
func (b *Bucket) DeleteByURL(ctx context.Context, raw string) bool {
	key, err := b.KeyFromURL(raw)
	if err != nil {
		return false
	}
	return b.DeleteByKey(ctx, key)
}

// DeleteByKey issues the delete and swallows any failure.
func (b *Bucket) DeleteByKey(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	if err := b.store.Delete(ctx, key); err != nil {
		log.Printf("storage: delete %s failed: %v", key, err)
		return false
	}
	return true
}
