package cache

import (
	"context"
	"testing"
	"time"

	"staffdir/internal/entity"
)

func TestSearchKeyNormalisation(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		expected string
	}{
		{name: "lowercase", term: "ivan", expected: "profiles:search:ivan"},
		{name: "uppercase", term: "IVAN", expected: "profiles:search:ivan"},
		{name: "mixed with spaces", term: "  IvAn ", expected: "profiles:search:ivan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchKey(tt.term); got != tt.expected {
				t.Fatalf("SearchKey(%q) = %q, want %q", tt.term, got, tt.expected)
			}
		})
	}
}

func TestNilClientIsNoop(t *testing.T) {
	c := NewSearchCache(nil, time.Minute)

	if _, ok := c.GetSearch(context.Background(), "ivan"); ok {
		t.Fatal("expected miss from nil-client cache")
	}

	// Must not panic or error.
	c.SetSearch(context.Background(), "ivan", []entity.ProfileSearchItem{{ID: 1, FirstName: "Ivan"}})

	var nilCache *SearchCache
	if _, ok := nilCache.GetSearch(context.Background(), "ivan"); ok {
		t.Fatal("expected miss from nil cache")
	}
	nilCache.SetSearch(context.Background(), "ivan", nil)
}
