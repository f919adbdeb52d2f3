// Package resolver turns a parsed Request, plus the configured workspaces
// and MRU activity state, into a concrete filesystem location or one of
// the handful of reasons it could not find one.
package resolver

import (
	"path/filepath"
	"sort"

	"github.com/browserup/sorcery-desktop/internal/mru"
	"github.com/browserup/sorcery-desktop/internal/parser"
	"github.com/browserup/sorcery-desktop/internal/pathvalidator"
	"github.com/browserup/sorcery-desktop/internal/settings"
)

// joinWithinRoot joins a workspace-relative path onto root without
// resolving it yet; pathvalidator.Canonicalize performs the actual
// containment check once the path exists on disk.
func joinWithinRoot(root, relative string) string {
	return filepath.Join(root, relative)
}

// Resolver resolves parser.Request values against the current settings and
// MRU snapshots. It holds no mutable state of its own.
type Resolver struct {
	settings *settings.Store
	mru      *mru.Store
}

// New creates a Resolver reading from settingsStore and mruStore.
func New(settingsStore *settings.Store, mruStore *mru.Store) *Resolver {
	return &Resolver{settings: settingsStore, mru: mruStore}
}

// Resolve dispatches on req.Kind to the matching resolution strategy.
func (r *Resolver) Resolve(req *parser.Request) (*Result, error) {
	switch req.Kind {
	case parser.KindWorkspacePath:
		return r.resolveWorkspacePath(req)
	case parser.KindPartialPath:
		return r.resolvePartialPath(req)
	case parser.KindFullPath:
		return r.resolveFullPath(req)
	case parser.KindProviderPassthrough:
		return r.resolveProviderPassthrough(req)
	default:
		return &Result{Kind: KindNotFound, Reason: "unrecognized request kind"}, nil
	}
}

func (r *Resolver) resolveWorkspacePath(req *parser.Request) (*Result, error) {
	cfg := r.settings.Get()
	ws, ok := cfg.WorkspaceByName(req.Workspace)
	if !ok {
		return &Result{Kind: KindUnknownWorkspace, WorkspaceName: req.Workspace, Remote: req.Remote}, nil
	}

	root, err := pathvalidator.Canonicalize(ws.Path)
	if err != nil {
		return &Result{Kind: KindNotFound, Reason: "workspace root unreadable: " + err.Error()}, nil
	}

	candidate := joinWithinRoot(root, req.Path)
	result, err := pathvalidator.Validate(candidate, []pathvalidator.Workspace{{Name: ws.DisplayName, CanonicalRoot: root}}, false)
	if err != nil {
		return &Result{Kind: KindNotFound, Reason: err.Error()}, nil
	}

	return &Result{
		Kind:          KindResolved,
		AbsolutePath:  result.Resolved,
		Line:          req.Line,
		Col:           req.Col,
		EditorHint:    ws.EditorID,
		WorkspaceName: ws.DisplayName,
		WorkspaceRoot: root,
	}, nil
}

func (r *Resolver) resolvePartialPath(req *parser.Request) (*Result, error) {
	cfg := r.settings.Get()
	ordered := r.orderedWorkspaces(cfg, req.WorkspaceHint)

	var candidates []Candidate
	for _, ws := range ordered {
		root, err := pathvalidator.Canonicalize(ws.Path)
		if err != nil {
			continue
		}
		// Stop scanning this workspace as soon as one match turns up; the
		// total-candidate count across workspaces is what decides Resolved
		// vs. MultipleCandidates.
		match, err := findFirstSuffixMatch(root, req.Path)
		if err != nil || match == "" {
			continue
		}
		candidates = append(candidates, Candidate{AbsolutePath: match, Workspace: ws.DisplayName})
	}

	switch len(candidates) {
	case 0:
		return &Result{Kind: KindNotFound, Reason: "no file matching " + req.Path}, nil
	case 1:
		root, _ := pathvalidator.Canonicalize(rootFor(cfg, candidates[0].Workspace))
		return &Result{
			Kind:          KindResolved,
			AbsolutePath:  candidates[0].AbsolutePath,
			Line:          req.Line,
			Col:           req.Col,
			EditorHint:    editorHintFor(cfg, candidates[0].Workspace),
			WorkspaceName: candidates[0].Workspace,
			WorkspaceRoot: root,
		}, nil
	default:
		return &Result{Kind: KindMultipleCandidates, Candidates: candidates, Line: req.Line, Col: req.Col}, nil
	}
}

func (r *Resolver) resolveFullPath(req *parser.Request) (*Result, error) {
	cfg := r.settings.Get()
	workspaces := canonicalizedWorkspaces(cfg)

	result, err := pathvalidator.Validate(req.AbsolutePath, workspaces, cfg.AllowNonWorkspaceFiles)
	if err != nil {
		return nil, err
	}

	hint := ""
	root := ""
	if result.Workspace != "" {
		hint = editorHintFor(cfg, result.Workspace)
		root, _ = pathvalidator.Canonicalize(rootFor(cfg, result.Workspace))
	}
	return &Result{
		Kind:          KindResolved,
		AbsolutePath:  result.Resolved,
		Line:          req.Line,
		Col:           req.Col,
		EditorHint:    hint,
		WorkspaceName: result.Workspace,
		WorkspaceRoot: root,
	}, nil
}

func (r *Resolver) resolveProviderPassthrough(req *parser.Request) (*Result, error) {
	cfg := r.settings.Get()

	if req.WorkspaceOverride != "" {
		if ws, ok := cfg.WorkspaceByOverride(req.WorkspaceOverride); ok {
			return r.resolveWithinRepoWorkspace(cfg, ws, req)
		}
	}

	pp := parseProviderPath(req.OwnerRepoPath)
	if pp.Repo != "" {
		if ws, ok := cfg.WorkspaceByName(pp.Repo); ok {
			return r.resolveWithinRepoWorkspace(cfg, ws, req)
		}
	}

	return &Result{
		Kind:          KindUnmappedProvider,
		ProviderHost:  req.ProviderHost,
		OwnerRepoPath: req.OwnerRepoPath,
	}, nil
}

func (r *Resolver) resolveWithinRepoWorkspace(cfg settings.Settings, ws settings.Workspace, req *parser.Request) (*Result, error) {
	root, err := pathvalidator.Canonicalize(ws.Path)
	if err != nil {
		return &Result{Kind: KindNotFound, Reason: "workspace root unreadable: " + err.Error()}, nil
	}

	pp := parseProviderPath(req.OwnerRepoPath)
	line := parseFragmentLine(req.Fragment)

	if pp.FilePath == "" {
		return &Result{Kind: KindResolved, AbsolutePath: root, Line: line, EditorHint: ws.EditorID, WorkspaceName: ws.DisplayName, WorkspaceRoot: root}, nil
	}

	candidate := joinWithinRoot(root, pp.FilePath)
	result, err := pathvalidator.Validate(candidate, []pathvalidator.Workspace{{Name: ws.DisplayName, CanonicalRoot: root}}, false)
	if err != nil {
		return &Result{Kind: KindNotFound, Reason: err.Error()}, nil
	}

	return &Result{
		Kind:          KindResolved,
		AbsolutePath:  result.Resolved,
		Line:          line,
		EditorHint:    ws.EditorID,
		WorkspaceName: ws.DisplayName,
		WorkspaceRoot: root,
	}, nil
}

// orderedWorkspaces returns the configured workspaces in search order: a
// matching workspace_hint first, then descending MRU recency, ties broken
// by configured position.
func (r *Resolver) orderedWorkspaces(cfg settings.Settings, hint string) []settings.Workspace {
	all := append([]settings.Workspace(nil), cfg.Workspaces...)

	var hinted *settings.Workspace
	if hint != "" {
		if ws, ok := cfg.WorkspaceByName(hint); ok {
			hinted = &ws
		}
	}

	mruTimes := map[string]int64{}
	if r.mru != nil {
		for name, t := range r.mru.All() {
			mruTimes[name] = t.UnixNano()
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		ti, oki := mruTimes[all[i].DisplayName]
		tj, okj := mruTimes[all[j].DisplayName]
		if oki && okj {
			return ti > tj
		}
		return oki && !okj
	})

	if hinted == nil {
		return all
	}

	ordered := make([]settings.Workspace, 0, len(all)+1)
	ordered = append(ordered, *hinted)
	for _, ws := range all {
		if ws.Path != hinted.Path {
			ordered = append(ordered, ws)
		}
	}
	return ordered
}

func canonicalizedWorkspaces(cfg settings.Settings) []pathvalidator.Workspace {
	out := make([]pathvalidator.Workspace, 0, len(cfg.Workspaces))
	for _, ws := range cfg.Workspaces {
		root, err := pathvalidator.Canonicalize(ws.Path)
		if err != nil {
			continue
		}
		out = append(out, pathvalidator.Workspace{Name: ws.DisplayName, CanonicalRoot: root})
	}
	return out
}

func rootFor(cfg settings.Settings, workspaceName string) string {
	if ws, ok := cfg.WorkspaceByName(workspaceName); ok {
		return ws.Path
	}
	return ""
}

func editorHintFor(cfg settings.Settings, workspaceName string) string {
	if ws, ok := cfg.WorkspaceByName(workspaceName); ok {
		return ws.EditorID
	}
	return ""
}
