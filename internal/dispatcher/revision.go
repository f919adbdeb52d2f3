package dispatcher

import (
	"context"

	"github.com/browserup/sorcery-desktop/internal/apperr"
	"github.com/browserup/sorcery-desktop/internal/parser"
)

// revisionOutcome is what handleGitRef decides to do before the editor is
// launched: proceed with a (possibly rewritten) path, or hand control back
// to the caller with one of the dialog/flash/error results.
type revisionOutcome struct {
	Path   string // the path to actually open, possibly inside a worktree
	Result *HandleResult
}

// handleGitRef applies the §4.5 decision table when the request carries a
// git_ref and the resolved path lives inside a workspace. repoPath is the
// workspace root; absolutePath is the resolved file path.
func (d *Dispatcher) handleGitRef(ctx context.Context, repoPath, absolutePath string, ref parser.GitRef, autoSwitchClean bool, worktreeRoot, workspaceName string, maxWorktrees int) revisionOutcome {
	status, err := d.repo.Status(ctx, repoPath)
	if err != nil {
		if apperr.Is(err, apperr.KindNotARepo) {
			return revisionOutcome{Result: errorResult(err)}
		}
		return revisionOutcome{Result: errorResult(err)}
	}

	refValue := ref.Value

	if status.CurrentBranch == refValue {
		return revisionOutcome{Path: absolutePath}
	}

	_, resolveErr := d.repo.ResolveRef(ctx, repoPath, refValue, false)
	if resolveErr != nil {
		if apperr.KindOf(resolveErr) == apperr.KindRefAmbiguous {
			return revisionOutcome{Result: errorResult(resolveErr)}
		}
		return revisionOutcome{Result: &HandleResult{
			Kind:     KindShowRevisionDialog,
			Revision: &RevisionDialog{CanFetch: true},
		}}
	}

	if !status.Dirty {
		if ref.Kind == parser.RefBranch && autoSwitchClean {
			if err := d.repo.Checkout(ctx, repoPath, refValue); err != nil {
				return revisionOutcome{Result: errorResult(err)}
			}
			return revisionOutcome{
				Path: absolutePath,
				Result: &HandleResult{Kind: KindFlashSwitching, From: status.CurrentBranch, To: refValue},
			}
		}

		if worktreeRoot != "" {
			wtPath, err := d.repo.WorktreeAdd(ctx, repoPath, workspaceName, refValue, worktreeRoot, maxWorktrees)
			if err == nil {
				return revisionOutcome{Path: rewritePath(absolutePath, repoPath, wtPath)}
			}
		}

		return revisionOutcome{Result: &HandleResult{
			Kind:     KindShowRevisionDialog,
			Revision: &RevisionDialog{CanCheckout: true, CanWorktree: true},
		}}
	}

	if worktreeRoot != "" {
		if wtPath, ok := d.repo.ExistingWorktree(worktreeRoot, workspaceName, refValue); ok {
			return revisionOutcome{Path: rewritePath(absolutePath, repoPath, wtPath)}
		}
	}

	return revisionOutcome{Result: &HandleResult{
		Kind: KindShowRevisionDialog,
		Revision: &RevisionDialog{
			CanCheckout: false,
			CanWorktree: true,
			BlockReason: "dirty",
		},
	}}
}

// rewritePath re-roots absolutePath (originally under repoRoot) under
// worktreeRoot, preserving the path relative to the repo root.
func rewritePath(absolutePath, repoRoot, worktreeRoot string) string {
	rel := trimRoot(absolutePath, repoRoot)
	if rel == "" {
		return worktreeRoot
	}
	return worktreeRoot + "/" + rel
}

func trimRoot(path, root string) string {
	if len(path) <= len(root) {
		return ""
	}
	if path[:len(root)] != root {
		return ""
	}
	rest := path[len(root):]
	for len(rest) > 0 && rest[0] == '/' {
		rest = rest[1:]
	}
	return rest
}
