package cli

import (
	"fmt"
	"os"

	"github.com/browserup/sorcery-desktop/internal/apperr"
)

// ErrorHandler turns an apperr.Kind into a user-facing message on stderr,
// matching the dispatcher's closed error-kind set rather than the generic
// error codes a service-orchestration CLI would carry.
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose}
}

// Handle prints a message appropriate to err's apperr.Kind and returns err
// unchanged so callers can still propagate it as the process exit cause.
func (h *ErrorHandler) Handle(err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindMalformed:
		fmt.Fprintf(os.Stderr, "error: could not parse that srcuri:// URL\n")
	case apperr.KindUnknownWorkspace:
		fmt.Fprintf(os.Stderr, "error: workspace is not configured\n")
	case apperr.KindNotFound:
		fmt.Fprintf(os.Stderr, "error: no matching file found\n")
	case apperr.KindOutsideWorkspace:
		fmt.Fprintf(os.Stderr, "error: resolved path is outside every configured workspace\n")
	case apperr.KindNotARepo:
		fmt.Fprintf(os.Stderr, "error: not a git repository\n")
	case apperr.KindRefNotFound:
		fmt.Fprintf(os.Stderr, "error: git ref not found\n")
	case apperr.KindRefAmbiguous:
		fmt.Fprintf(os.Stderr, "error: git ref is ambiguous\n")
	case apperr.KindDirtyWorkingTree:
		fmt.Fprintf(os.Stderr, "error: working tree has uncommitted changes\n")
	case apperr.KindWorktreeFailed:
		fmt.Fprintf(os.Stderr, "error: could not create or reuse a worktree\n")
	case apperr.KindNoEditor:
		fmt.Fprintf(os.Stderr, "error: no installed editor is configured or available\n")
	case apperr.KindLaunchFailed:
		fmt.Fprintf(os.Stderr, "error: editor failed to launch\n")
	case apperr.KindFoldersUnsupported:
		fmt.Fprintf(os.Stderr, "error: this editor does not support opening folders\n")
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}

	if h.Verbose {
		fmt.Fprintf(os.Stderr, "\ndetail: %v\n", err)
	}

	return err
}
