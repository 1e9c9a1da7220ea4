package storage

import (
	"context"
	"reflect"
	"testing"
)

func TestRemovedURLs(t *testing.T) {
	tests := []struct {
		name     string
		old, new []string
		want     []string
	}{
		{"no change", []string{"a", "b"}, []string{"a", "b"}, []string{}},
		{"one removed", []string{"a", "b"}, []string{"b"}, []string{"a"}},
		{"all removed", []string{"a", "b"}, nil, []string{"a", "b"}},
		{"empties skipped", []string{"", "a"}, nil, []string{"a"}},
		{"duplicates collapse", []string{"a", "a"}, nil, []string{"a"}},
		{"additions ignored", []string{"a"}, []string{"a", "c"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemovedURLs(tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RemovedURLs(%v, %v) = %v, want %v", tt.old, tt.new, got, tt.want)
			}
		})
	}
}

func TestCleanupRemovedOnReplace(t *testing.T) {
	b, fs := newTestBucket(t)
	urlA := base + "/collections/s/a.jpg"
	urlB := base + "/collections/s/b.jpg"

	b.CleanupRemoved(context.Background(), []string{urlA}, []string{urlB})

	if got := fs.deleteCount("collections/s/a.jpg"); got != 1 {
		t.Errorf("old url deleted %d times, want 1", got)
	}
	if got := fs.deleteCount("collections/s/b.jpg"); got != 0 {
		t.Errorf("new url deleted %d times, want 0", got)
	}
}

func TestCleanupRemovedNoop(t *testing.T) {
	b, fs := newTestBucket(t)
	url := base + "/collections/s/a.jpg"

	b.CleanupRemoved(context.Background(), []string{url}, []string{url})

	if fs.total() != 0 {
		t.Errorf("same-value update issued %d deletes, want 0", fs.total())
	}
}

func TestCleanupRemovedKeepsMovedURL(t *testing.T) {
	b, fs := newTestBucket(t)
	url := base + "/collections/s/a.jpg"

	// url moved from mainImage to otherImages: present in both snapshots'
	// unions, so it must survive.
	old := []string{url, base + "/collections/s/gone.jpg"}
	new := []string{base + "/collections/s/fresh.jpg", url}

	b.CleanupRemoved(context.Background(), old, new)

	if got := fs.deleteCount("collections/s/a.jpg"); got != 0 {
		t.Errorf("moved url deleted %d times, want 0", got)
	}
	if got := fs.deleteCount("collections/s/gone.jpg"); got != 1 {
		t.Errorf("dropped url deleted %d times, want 1", got)
	}
}

func TestCleanupAllDeletesEverything(t *testing.T) {
	b, fs := newTestBucket(t)

	urls := []string{
		base + "/collections/s/main.jpg",
		base + "/collections/s/main2.jpg",
		base + "/collections/s/other1.jpg",
		base + "/collections/s/other2.jpg",
	}
	b.CleanupAll(context.Background(), urls)

	if fs.total() != 4 {
		t.Fatalf("store saw %d delete calls, want 4", fs.total())
	}
}

func TestCleanupAllFailureIsolation(t *testing.T) {
	b, fs := newTestBucket(t)
	fs.fail["collections/s/main2.jpg"] = true

	urls := []string{
		base + "/collections/s/main.jpg",
		base + "/collections/s/main2.jpg",
		base + "/collections/s/other1.jpg",
		base + "/collections/s/other2.jpg",
	}
	b.CleanupAll(context.Background(), urls)

	// one failure must not stop the other three attempts
	if fs.total() != 4 {
		t.Fatalf("store saw %d delete calls, want 4", fs.total())
	}
	for _, key := range []string{"collections/s/main.jpg", "collections/s/other1.jpg", "collections/s/other2.jpg"} {
		if fs.deleteCount(key) != 1 {
			t.Errorf("%s attempted %d times, want 1", key, fs.deleteCount(key))
		}
	}
}

func TestCleanupAllSkipsUnmanaged(t *testing.T) {
	b, fs := newTestBucket(t)

	b.CleanupAll(context.Background(), []string{
		"https://cdn.example.com/external.jpg",
		base + "/collections/s/ours.jpg",
		"",
	})

	if fs.total() != 1 {
		t.Fatalf("store saw %d delete calls, want 1", fs.total())
	}
	if fs.deleteCount("collections/s/ours.jpg") != 1 {
		t.Error("managed url not deleted")
	}
}
