package dispatcher

import "github.com/browserup/sorcery-desktop/internal/apperr"

// HandleResultKind discriminates the dispatcher's result sum type.
type HandleResultKind int

const (
	KindOpened HandleResultKind = iota
	KindShowChooser
	KindShowRevisionDialog
	KindShowCloneDialog
	KindShowOutsideWorkspaceConfirm
	KindShowMissingLocalRedirect
	KindFlashSwitching
	KindOpenInBrowser
	KindError
)

// HandleResult is what Dispatch returns: exactly one of the fields below
// is meaningful, selected by Kind.
type HandleResult struct {
	Kind HandleResultKind

	// ShowChooser
	Candidates []Candidate
	Line       *int
	Col        *int

	// ShowRevisionDialog
	Revision *RevisionDialog

	// ShowCloneDialog
	Remote        string
	Destination   string
	WorkspaceName string
	Ref           string

	// ShowOutsideWorkspaceConfirm
	Resolved string

	// ShowMissingLocalRedirect / OpenInBrowser
	URL string

	// FlashSwitching
	From, To string

	// Error
	ErrKind apperr.Kind
	Detail  string
}

// Candidate is one entry in a ShowChooser result.
type Candidate struct {
	AbsolutePath string
	Workspace    string
}

// RevisionDialog accompanies KindShowRevisionDialog, per §4.5's decision
// table: the caller renders exactly the actions the flags permit.
type RevisionDialog struct {
	CanCheckout bool
	CanWorktree bool
	CanFetch    bool
	BlockReason string
}

func errorResult(err error) *HandleResult {
	if ae, ok := err.(*apperr.Error); ok {
		return &HandleResult{Kind: KindError, ErrKind: ae.Kind, Detail: ae.Detail}
	}
	return &HandleResult{Kind: KindError, ErrKind: apperr.KindNotFound, Detail: err.Error()}
}
