package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/browserup/sorcery-desktop/internal/mru"
)

// hardSearchCap bounds the number of filesystem entries a single
// PartialPath search visits per workspace, a defensive cap like the one
// (fsFallbackEntryCap, 400 entries) the MRU fallback signal applies to its
// own tree walk.
const hardSearchCap = 4000

var skipDirs = map[string]bool{
	".git": true, "node_modules": true, ".hg": true, ".svn": true,
}

// findFirstSuffixMatch walks root looking for a file whose path relative
// to root equals suffix or ends with "/"+suffix — a segment-boundary
// suffix match, not a substring match. It returns as soon as one match is
// found, and stops examining entries once hardSearchCap is reached, both
// to minimize I/O for a single workspace's share of a PartialPath search.
func findFirstSuffixMatch(root, suffix string) (string, error) {
	suffix = filepath.ToSlash(suffix)
	examined := 0
	found := ""

	var walk func(dir, relPrefix string) error
	walk = func(dir, relPrefix string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil
		}
		for _, e := range entries {
			if found != "" || examined >= hardSearchCap {
				return nil
			}
			examined++

			name := e.Name()
			rel := relPrefix + name
			if e.IsDir() {
				if skipDirs[name] || mru.Ignored(root, rel) {
					continue
				}
				if err := walk(filepath.Join(dir, name), rel+"/"); err != nil {
					return err
				}
				continue
			}

			if mru.Ignored(root, rel) {
				continue
			}
			if rel == suffix || strings.HasSuffix(rel, "/"+suffix) {
				found = filepath.Join(root, rel)
				return nil
			}
		}
		return nil
	}

	if err := walk(root, ""); err != nil {
		return "", err
	}
	return found, nil
}
