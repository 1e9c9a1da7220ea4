package storage

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadFile stores one multipart file under prefix and returns its public
// URL. Object names are always freshly minted, so replacing an image never
// overwrites the old object — the cleanup pass removes it instead.
func (b *Bucket) UploadFile(ctx context.Context, prefix string, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".bin"
	}
	key := fmt.Sprintf("%s/%d-%s%s", prefix, time.Now().UTC().Unix(), uuid.New().String(), ext)

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(ext)
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if err := b.store.Put(ctx, key, ct, f); err != nil {
		return "", fmt.Errorf("upload %s: %w", fh.Filename, err)
	}
	return b.PublicURL(key), nil
}

// UploadFiles uploads in order; on failure the already-stored objects are
// deleted best-effort so a half-failed submission leaves no orphans behind.
func (b *Bucket) UploadFiles(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		u, err := b.UploadFile(ctx, prefix, fh)
		if err != nil {
			b.CleanupAll(ctx, urls)
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}
