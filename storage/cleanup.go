package storage

import (
	"context"
	"sync"
)

// The asset lifecycle pass: every entity that stores URLs runs through these
// two helpers on update and delete. The diff is computed over the union of a
// record's URLs, so a URL that merely moved between fields of the same record
// is never deleted.

// RemovedURLs returns the URLs present in old but absent from new
// (set difference by exact string match, input order preserved, empties and
// duplicates dropped).
func RemovedURLs(old, new []string) []string {
	keep := make(map[string]struct{}, len(new))
	for _, u := range new {
		keep[u] = struct{}{}
	}
	seen := make(map[string]struct{}, len(old))
	removed := make([]string, 0)
	for _, u := range old {
		if u == "" {
			continue
		}
		if _, ok := keep[u]; ok {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		removed = append(removed, u)
	}
	return removed
}

// CleanupRemoved deletes every URL that old held and new no longer does.
// Called after the record mutation has committed; nothing here can fail the
// request.
func (b *Bucket) CleanupRemoved(ctx context.Context, old, new []string) {
	b.CleanupAll(ctx, RemovedURLs(old, new))
}

// CleanupAll deletes the given URLs concurrently with all-settled semantics:
// each delete is independent and a failure (logged inside DeleteByURL) never
// cancels the rest.
func (b *Bucket) CleanupAll(ctx context.Context, urls []string) {
	var wg sync.WaitGroup
	for _, u := range urls {
		if u == "" {
			continue
		}
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			b.DeleteByURL(ctx, u)
		}(u)
	}
	wg.Wait()
}
