// Package parser lexes srcuri:// URLs into a typed Request. It is pure and
// total over UTF-8 input: parse never fails for semantic reasons (a missing
// workspace, a bad line number) — only for malformed syntax. Those semantic
// concerns belong to the resolver.
package parser

// RefKind discriminates the three forms a git_ref query value can take.
type RefKind int

const (
	RefNone RefKind = iota
	RefCommit
	RefBranch
	RefTag
)

// GitRef is a tagged union: exactly one of Commit/Branch/Tag is meaningful,
// selected by Kind.
type GitRef struct {
	Kind  RefKind
	Value string
}

func (r GitRef) IsZero() bool { return r.Kind == RefNone }

// RequestKind discriminates the Request sum type.
type RequestKind int

const (
	KindPartialPath RequestKind = iota
	KindWorkspacePath
	KindFullPath
	KindProviderPassthrough
)

// Request is the parser's output: exactly one of the four variants below is
// populated, selected by Kind. Line is 1-based when present; Col is 0..120
// when present. Both are nil when absent.
type Request struct {
	Kind RequestKind

	// PartialPath / WorkspacePath
	Path string

	// WorkspacePath
	Workspace string

	// FullPath
	AbsolutePath string

	// PartialPath / WorkspacePath
	WorkspaceHint string

	// ProviderPassthrough
	ProviderHost        string
	OwnerRepoPath       string
	FilePath            string
	WorkspaceOverride   string
	Fragment            string

	// Shared across variants
	Line   *int
	Col    *int
	GitRef GitRef
	Remote string
}

// MalformedError is returned when the scheme is absent, the URL is empty
// after the scheme, or UTF-8 decoding fails.
type MalformedError struct {
	Reason string
	URL    string
}

func (e *MalformedError) Error() string {
	return "malformed srcuri url: " + e.Reason + ": " + e.URL
}
