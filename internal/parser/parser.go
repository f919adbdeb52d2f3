package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const scheme = "srcuri:"

var (
	twoNum = regexp.MustCompile(`^(.*):([0-9]+):([0-9]+)$`)
	oneNum = regexp.MustCompile(`^(.*):([0-9]+)$`)
)

// Parse lexes a srcuri:// URL into a Request. It is pure, total on UTF-8
// input, and performs no I/O: it never consults the filesystem, settings,
// or MRU state.
func Parse(raw string) (*Request, error) {
	if !utf8.ValidString(raw) {
		return nil, &MalformedError{Reason: "invalid UTF-8", URL: raw}
	}
	if !strings.HasPrefix(raw, scheme) {
		return nil, &MalformedError{Reason: "missing srcuri: scheme", URL: raw}
	}
	rest := raw[len(scheme):]
	if rest == "" {
		return nil, &MalformedError{Reason: "empty after scheme", URL: raw}
	}
	if !strings.HasPrefix(rest, "//") {
		return nil, &MalformedError{Reason: "missing // after scheme", URL: raw}
	}
	rest = rest[2:]

	// Split off query and fragment before any path classification, but keep
	// the fragment attached to the raw tail so ProviderPassthrough can
	// preserve it literally.
	pathAndQuery := rest
	fragment := ""
	if idx := strings.IndexByte(pathAndQuery, '#'); idx != -1 {
		fragment = pathAndQuery[idx+1:]
		pathAndQuery = pathAndQuery[:idx]
	}
	pathPart := pathAndQuery
	queryPart := ""
	if idx := strings.IndexByte(pathAndQuery, '?'); idx != -1 {
		queryPart = pathAndQuery[idx+1:]
		pathPart = pathAndQuery[:idx]
	}

	q := parseQuery(queryPart)

	req := &Request{
		GitRef:        q.gitRef,
		Remote:        q.remote,
		WorkspaceHint: q.workspaceHint,
	}

	// Authority classification, §4.1 bullet 1.
	if strings.HasPrefix(pathPart, "/") {
		// Three-slash form: authority empty → FullPath.
		req.Kind = KindFullPath
		req.AbsolutePath = pathPart
		line, col, trimmed := extractLineCol(req.AbsolutePath)
		req.AbsolutePath = trimmed
		req.Line, req.Col = line, col
		return req, nil
	}

	slashIdx := strings.IndexByte(pathPart, '/')
	if slashIdx == -1 {
		// No slash anywhere: the "first path segment" consumed the whole
		// string, so there is no real authority/remainder split.
		req.Kind = KindPartialPath
		req.Path = pathPart
		line, col, trimmed := extractLineCol(req.Path)
		req.Path = trimmed
		req.Line, req.Col = line, col
		if req.WorkspaceOverride == "" {
			req.WorkspaceOverride = q.workspace
		}
		return req, nil
	}

	authority := pathPart[:slashIdx]
	remainder := pathPart[slashIdx+1:]

	if strings.Contains(authority, ".") && strings.Contains(remainder, "/") {
		// Provider passthrough: authority is a hostname, remainder a
		// provider-style owner/repo/... path with >=2 segments.
		req.Kind = KindProviderPassthrough
		req.ProviderHost = authority
		req.OwnerRepoPath = remainder
		req.Fragment = fragment
		req.WorkspaceOverride = q.workspace
		return req, nil
	}

	if strings.Contains(remainder, "/") {
		req.Kind = KindWorkspacePath
		req.Workspace = authority
		req.Path = remainder
		line, col, trimmed := extractLineCol(req.Path)
		req.Path = trimmed
		req.Line, req.Col = line, col
		if req.WorkspaceOverride == "" {
			req.WorkspaceOverride = q.workspace
		}
		return req, nil
	}

	// authority present, remainder empty or a single filename with no
	// slash → PartialPath with authority prepended back onto the path.
	req.Kind = KindPartialPath
	if remainder == "" {
		req.Path = authority
	} else {
		req.Path = authority + "/" + remainder
	}
	line, col, trimmed := extractLineCol(req.Path)
	req.Path = trimmed
	req.Line, req.Col = line, col
	if req.WorkspaceOverride == "" {
		req.WorkspaceOverride = q.workspace
	}
	return req, nil
}

// extractLineCol strips a trailing ":<n>[:<m>]" from path, right-to-left,
// per §4.1 bullet 2. A syntactically-matching but out-of-range suffix is
// never partially extracted: it is left in place entirely.
func extractLineCol(path string) (line, col *int, trimmed string) {
	if m := twoNum.FindStringSubmatch(path); m != nil {
		n, errN := strconv.Atoi(m[2])
		c, errC := strconv.Atoi(m[3])
		if errN == nil && errC == nil && n >= 1 && c >= 0 && c <= 120 {
			return &n, &c, m[1]
		}
		// Syntactically matched but invalid: leave the whole suffix in place.
		return nil, nil, path
	}
	if m := oneNum.FindStringSubmatch(path); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil && n >= 1 {
			return &n, nil, m[1]
		}
		return nil, nil, path
	}
	return nil, nil, path
}

type queryValues struct {
	gitRef        GitRef
	remote        string
	workspace     string
	workspaceHint string
}

// parseQuery implements the §4.1 bullet 4 overlay, preserving source order
// so "first occurrence wins" among commit|sha|branch|tag is well-defined
// regardless of which of those four keys appears first.
func parseQuery(raw string) queryValues {
	var q queryValues
	if raw == "" {
		return q
	}
	refDecided := false
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		switch key {
		case "commit", "sha":
			if !refDecided {
				q.gitRef = GitRef{Kind: RefCommit, Value: value}
				refDecided = true
			}
		case "branch":
			if !refDecided {
				q.gitRef = GitRef{Kind: RefBranch, Value: value}
				refDecided = true
			}
		case "tag":
			if !refDecided {
				q.gitRef = GitRef{Kind: RefTag, Value: value}
				refDecided = true
			}
		case "remote":
			q.remote = value
		case "workspace":
			q.workspace = value
		case "workspaceHint":
			q.workspaceHint = value
		default:
			// unknown keys are ignored
		}
	}
	return q
}
