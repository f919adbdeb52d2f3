// Package dispatcher turns a parsed, resolved srcuri:// request into an
// action: open an editor, show a chooser, show a revision dialog, or
// surface an error. It is the seam between internal/resolver's pure
// lookups and the side effects (git commands, process launches) those
// lookups sometimes require.
package dispatcher

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/browserup/sorcery-desktop/internal/apperr"
	"github.com/browserup/sorcery-desktop/internal/editors"
	"github.com/browserup/sorcery-desktop/internal/gitrepo"
	"github.com/browserup/sorcery-desktop/internal/mru"
	"github.com/browserup/sorcery-desktop/internal/parser"
	"github.com/browserup/sorcery-desktop/internal/resolver"
	"github.com/browserup/sorcery-desktop/internal/settings"
)

// Dispatcher wires the parser, resolver, git layer, and editor registry
// into the single entry point a srcuri:// handler needs.
type Dispatcher struct {
	settings *settings.Store
	resolver *resolver.Resolver
	registry *editors.Registry
	repo     *gitrepo.Repo
	mru      *mru.Store
	log      *LaunchLog
	logger   *logrus.Entry
}

// New wires a Dispatcher from its component stores. logger may be nil, in
// which case a standalone entry is created.
func New(settingsStore *settings.Store, res *resolver.Resolver, registry *editors.Registry, repo *gitrepo.Repo, mruStore *mru.Store, logger *logrus.Entry) *Dispatcher {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Dispatcher{
		settings: settingsStore,
		resolver: res,
		registry: registry,
		repo:     repo,
		mru:      mruStore,
		log:      NewLaunchLog(),
		logger:   logger,
	}
}

// LaunchLog exposes the bounded recent-launch history for diagnostics.
func (d *Dispatcher) LaunchLog() *LaunchLog { return d.log }

// Dispatch parses raw, resolves it to a location, applies any git revision
// handling the location calls for, selects an editor, and launches it.
func (d *Dispatcher) Dispatch(ctx context.Context, raw string) *HandleResult {
	req, err := parser.Parse(raw)
	if err != nil {
		d.logger.WithError(err).WithField("url", raw).Warn("failed to parse srcuri request")
		return errorResult(err)
	}

	res, err := d.resolver.Resolve(req)
	if err != nil {
		d.logger.WithError(err).Warn("failed to resolve request")
		return errorResult(err)
	}

	switch res.Kind {
	case resolver.KindMultipleCandidates:
		return &HandleResult{Kind: KindShowChooser, Candidates: toDispatcherCandidates(res.Candidates), Line: res.Line, Col: res.Col}
	case resolver.KindUnknownWorkspace:
		return &HandleResult{Kind: KindShowCloneDialog, Remote: res.Remote, WorkspaceName: res.WorkspaceName}
	case resolver.KindUnmappedProvider:
		return &HandleResult{Kind: KindOpenInBrowser, URL: providerURL(res.ProviderHost, res.OwnerRepoPath, req.Fragment)}
	case resolver.KindNotFound:
		return errorResult(apperr.New(apperr.KindNotFound, res.Reason))
	}

	cfg := d.settings.Get()
	path := res.AbsolutePath

	if !req.GitRef.IsZero() && res.WorkspaceRoot != "" {
		outcome := d.handleGitRef(ctx, res.WorkspaceRoot, path, req.GitRef, cfg.AutoSwitchCleanBranches, cfg.WorktreeRoot, res.WorkspaceName, cfg.MaxWorktreesPerRepo)
		if outcome.Result != nil && outcome.Result.Kind != KindFlashSwitching {
			return outcome.Result
		}
		if outcome.Path != "" {
			path = outcome.Path
		}
	}

	if res.WorkspaceName == "" && !cfg.AllowNonWorkspaceFiles {
		return &HandleResult{Kind: KindShowOutsideWorkspaceConfirm, Resolved: path}
	}

	workspaceEditorID := res.EditorHint
	manager, ok := selectEditor(ctx, d.registry, cfg, workspaceEditorID)
	if !ok {
		return errorResult(apperr.New(apperr.KindNoEditor, "no installed editor available"))
	}

	opts := editors.OpenOptions{Line: res.Line, Col: res.Col}
	start := time.Now()
	launchErr := manager.Open(ctx, path, opts)
	d.log.Record(LaunchLogEntry{
		Timestamp:  start,
		EditorID:   manager.ID(),
		Path:       path,
		DurationMS: time.Since(start).Milliseconds(),
		Success:    launchErr == nil,
		Detail:     detailFor(launchErr),
	})

	if launchErr != nil {
		d.logger.WithError(launchErr).WithField("editor", manager.ID()).Warn("editor launch failed")
		return errorResult(apperr.Wrap(apperr.KindLaunchFailed, manager.ID(), launchErr))
	}

	if res.WorkspaceName != "" {
		d.mru.Apply(map[string]time.Time{res.WorkspaceName: time.Now()})
	}

	return &HandleResult{Kind: KindOpened}
}

func toDispatcherCandidates(in []resolver.Candidate) []Candidate {
	out := make([]Candidate, len(in))
	for i, c := range in {
		out[i] = Candidate{AbsolutePath: c.AbsolutePath, Workspace: c.Workspace}
	}
	return out
}

func providerURL(host, ownerRepoPath, fragment string) string {
	url := "https://srcuri.com/" + host + "/" + ownerRepoPath
	if fragment != "" {
		url += "#" + fragment
	}
	return url
}

func detailFor(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
