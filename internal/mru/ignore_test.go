package mru

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnored_MatchesConfiguredPatterns(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".sorceryignore"), []byte("vendor/\n*.generated.go\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	defer InvalidateIgnoreCache(root)

	cases := []struct {
		path string
		want bool
	}{
		{"vendor/pkg/file.go", true},
		{"src/main.go", false},
		{"src/types.generated.go", true},
	}

	for _, c := range cases {
		if got := Ignored(root, c.path); got != c.want {
			t.Errorf("Ignored(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestIgnored_NoIgnoreFileMeansNothingIgnored(t *testing.T) {
	root := t.TempDir()
	if Ignored(root, "anything.go") {
		t.Error("expected no .sorceryignore to mean nothing is ignored")
	}
}
