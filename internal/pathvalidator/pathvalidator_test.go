package pathvalidator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/browserup/sorcery-desktop/internal/apperr"
)

func TestIsStrictlyUnder(t *testing.T) {
	cases := []struct {
		child, parent string
		want          bool
	}{
		{"/a/b/c.txt", "/a/b", true},
		{"/a/b", "/a/b", false},
		{"/a/projectile/c.txt", "/a/project", false},
		{"/a/other/c.txt", "/a/b", false},
	}
	for _, tc := range cases {
		if got := IsStrictlyUnder(tc.child, tc.parent); got != tc.want {
			t.Errorf("IsStrictlyUnder(%q, %q) = %v, want %v", tc.child, tc.parent, got, tc.want)
		}
	}
}

func TestValidate_OutsideWorkspaceRejected(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "outside.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Validate(file, nil, false)
	if !apperr.Is(err, apperr.KindOutsideWorkspace) {
		t.Fatalf("expected OutsideWorkspace, got %v", err)
	}
}

func TestValidate_OutsideWorkspaceAllowed(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "outside.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Validate(file, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Outside {
		t.Fatalf("expected Outside=true")
	}
}

func TestValidate_InsideWorkspace(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(sub, "main.go")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	canonicalDir, err := Canonicalize(dir)
	if err != nil {
		t.Fatal(err)
	}

	res, err := Validate(file, []Workspace{{Name: "proj", CanonicalRoot: canonicalDir}}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Workspace != "proj" {
		t.Fatalf("expected workspace proj, got %q", res.Workspace)
	}
	if res.Outside {
		t.Fatalf("expected Outside=false")
	}
}

func TestCanonicalize_RelativeRejected(t *testing.T) {
	_, err := Canonicalize("relative/path.txt")
	if !apperr.Is(err, apperr.KindMalformed) {
		t.Fatalf("expected Malformed, got %v", err)
	}
}

func TestCanonicalize_NonexistentRejected(t *testing.T) {
	_, err := Canonicalize("/definitely/does/not/exist/ever")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
