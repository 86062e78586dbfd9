package slug_test

import (
	"regexp"
	"testing"

	"github.com/blog-article-api/pkg/slug"
)

func TestGenerate_Normalization(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		prefix string
	}{
		{"simple title", "Hello World", "hello-world-"},
		{"extra whitespace", "  Hello    World  ", "hello-world-"},
		{"punctuation runs", "Hello, World! (2024)", "hello-world-2024-"},
		{"already lower", "golang tips", "golang-tips-"},
		{"mixed case", "GoLang Is FUN", "golang-is-fun-"},
	}

	pattern := regexp.MustCompile(`^[a-z0-9-]+-[a-z0-9]{6}$`)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slug.Generate(tt.title)
			if len(got) <= len(tt.prefix) || got[:len(tt.prefix)] != tt.prefix {
				t.Errorf("Generate(%q) = %q, want prefix %q", tt.title, got, tt.prefix)
			}
			if !pattern.MatchString(got) {
				t.Errorf("Generate(%q) = %q, does not match slug pattern", tt.title, got)
			}
		})
	}
}

func TestGenerate_EmptyTitle(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]{6}$`)

	for _, title := range []string{"", "   ", "!!!"} {
		got := slug.Generate(title)
		if !pattern.MatchString(got) {
			t.Errorf("Generate(%q) = %q, want bare 6-char token", title, got)
		}
	}
}

func TestGenerate_DistinctForSameTitle(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := slug.Generate("Hello World")
		if seen[s] {
			t.Fatalf("duplicate slug generated: %s", s)
		}
		seen[s] = true
	}
}
