package utils

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestIsDuplicateKey(t *testing.T) {
	writeErr := func(code int) error {
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: code}}}
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"write exception 11000", writeErr(11000), true},
		{"write exception 11001", writeErr(11001), true},
		{"write exception other code", writeErr(121), false},
		{"bulk write exception 11000", mongo.BulkWriteException{
			WriteErrors: []mongo.BulkWriteError{{WriteError: mongo.WriteError{Code: 11000}}},
		}, true},
		{"wrapped write exception", fmt.Errorf("insert: %w", writeErr(11000)), true},
		{"server message fallback", errors.New(`E11000 duplicate key error collection: shaadicloset.products index: productId_1`), true},
		{"unrelated error", errors.New("connection reset by peer"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicateKey(tt.err); got != tt.want {
				t.Errorf("IsDuplicateKey = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Royal Blue Sherwani", "royal-blue-sherwani"},
		{"Lehenga — Édition Spéciale", "lehenga-edition-speciale"},
		{"  spaced  out  ", "spaced-out"},
	}
	for _, tt := range tests {
		if got := GenerateSlug(tt.in); got != tt.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMergeURLLists(t *testing.T) {
	old := []string{"a", "b", "c"}
	got := MergeURLLists(old, []string{"b"}, []string{"d", "a"})
	want := []string{"a", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeURLLists = %v, want %v", got, want)
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Errorf("empty = %d", got)
	}
	if got := ParseIntDefault("12", 7); got != 12 {
		t.Errorf("12 = %d", got)
	}
	if got := ParseIntDefault("twelve", 7); got != 7 {
		t.Errorf("garbage = %d", got)
	}
}
