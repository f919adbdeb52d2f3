package mru

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/moby/patternmatcher"
)

// ignoreCache memoizes one compiled matcher per workspace root so repeated
// cycles don't re-read and re-parse .sorceryignore every time.
var ignoreCache sync.Map // map[string]*patternmatcher.PatternMatcher

// loadIgnoreMatcher returns the compiled .sorceryignore matcher for root,
// or nil if the workspace has none. Patterns follow gitignore syntax via
// patternmatcher, the same library the teacher pack uses for build-context
// exclusion.
func loadIgnoreMatcher(root string) *patternmatcher.PatternMatcher {
	if cached, ok := ignoreCache.Load(root); ok {
		pm, _ := cached.(*patternmatcher.PatternMatcher)
		return pm
	}

	raw, err := os.ReadFile(filepath.Join(root, ".sorceryignore"))
	if err != nil {
		ignoreCache.Store(root, (*patternmatcher.PatternMatcher)(nil))
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// As in gitignore, a pattern with no slash (other than a trailing
		// one) matches at any depth; patternmatcher anchors it at the root
		// unless it is prefixed with "**/".
		negate := strings.HasPrefix(line, "!")
		body := strings.TrimPrefix(line, "!")
		if !strings.Contains(strings.TrimSuffix(body, "/"), "/") {
			body = "**/" + body
		}
		if negate {
			body = "!" + body
		}
		patterns = append(patterns, body)
	}

	pm, err := patternmatcher.New(patterns)
	if err != nil {
		ignoreCache.Store(root, (*patternmatcher.PatternMatcher)(nil))
		return nil
	}

	ignoreCache.Store(root, pm)
	return pm
}

// Ignored reports whether path (relative to root) is excluded by root's
// .sorceryignore, honoring parent-directory matches. Exported so the
// resolver's partial-path search can honor the same ignore file.
func Ignored(root, relPath string) bool {
	pm := loadIgnoreMatcher(root)
	if pm == nil {
		return false
	}
	match, err := pm.MatchesOrParentMatches(filepath.ToSlash(relPath))
	return err == nil && match
}

// ignored is the package-internal spelling used by signals.go.
func ignored(root, relPath string) bool { return Ignored(root, relPath) }

// InvalidateIgnoreCache drops a cached matcher, used by tests and by the
// FS watcher when a .sorceryignore file itself changes.
func InvalidateIgnoreCache(root string) {
	ignoreCache.Delete(root)
}
