package resolver

// ResultKind discriminates the resolver's result sum type, mirroring the
// parser's RequestKind style rather than a Go interface.
type ResultKind int

const (
	KindResolved ResultKind = iota
	KindMultipleCandidates
	KindUnknownWorkspace
	KindUnmappedProvider
	KindNotFound
)

// Candidate is one match surfaced by MultipleCandidates.
type Candidate struct {
	AbsolutePath string
	Workspace    string
}

// Result is the resolver's output: exactly one of the fields below is
// meaningful, selected by Kind.
type Result struct {
	Kind ResultKind

	// Resolved
	AbsolutePath  string
	EditorHint    string
	WorkspaceName string // "" if the resolved path is outside every workspace
	WorkspaceRoot string

	// Resolved / MultipleCandidates
	Line *int
	Col  *int

	// MultipleCandidates
	Candidates []Candidate

	// UnknownWorkspace (WorkspaceName above carries the unknown name)
	Remote string

	// UnmappedProvider
	ProviderHost  string
	OwnerRepoPath string

	// NotFound
	Reason string
}
