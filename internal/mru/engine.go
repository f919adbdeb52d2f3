package mru

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/browserup/sorcery-desktop/internal/gitrepo"
	"github.com/browserup/sorcery-desktop/internal/procscan"
)

// PollInterval is the MRU tracker's wall-clock cycle period. A cycle that
// overruns the interval simply starts its next iteration late; there is no
// catch-up logic.
const PollInterval = 20 * time.Second

// WorkspaceLister supplies the current workspace set for each cycle; the
// engine never owns settings state itself.
type WorkspaceLister func() []Workspace

// Workspace is the subset of configured-workspace data the tracker needs.
type Workspace struct {
	Name string
	Root string
}

// Engine drives the MRU tracker: one goroutine, one process snapshot per
// cycle shared across every workspace's process-in-workspace signal.
type Engine struct {
	store     *Store
	repo      *gitrepo.Repo
	workspace WorkspaceLister
	logger    *logrus.Entry
	watchers  *watchSet
}

// New creates an Engine writing into store.
func New(store *Store, repo *gitrepo.Repo, workspaces WorkspaceLister, logger *logrus.Entry) *Engine {
	return &Engine{store: store, repo: repo, workspace: workspaces, logger: logger, watchers: newWatchSet()}
}

// Run polls every PollInterval until ctx is canceled. It never returns an
// error: a failure for one workspace is logged and isolated, never fails
// the whole cycle.
func (e *Engine) Run(ctx context.Context) {
	e.store.Load()

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()
	defer e.watchers.close()

	e.cycle()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.cycle()
		}
	}
}

func (e *Engine) cycle() {
	workspaces := e.workspace()
	procs := procscan.Processes()

	signals := make(map[string]time.Time, len(workspaces))
	for _, ws := range workspaces {
		latest, found := e.latestFor(ws, procs)
		if found {
			signals[ws.Name] = latest
		}
	}

	e.store.Apply(signals)
	if err := e.store.Persist(); err != nil && e.logger != nil {
		e.logger.WithError(err).Warn("failed to persist workspace MRU state")
	}
}

func (e *Engine) latestFor(ws Workspace, procs []procscan.Process) (time.Time, bool) {
	var latest time.Time
	found := false

	consider := func(t time.Time, ok bool) {
		if ok && (!found || t.After(latest)) {
			latest = t
			found = true
		}
	}

	consider(processSignal(procs, ws.Root))
	consider(reflogSignal(e.repo, ws.Root))
	consider(statusMtimeSignal(e.repo, ws.Root))

	e.watchers.ensure(ws.Root)
	if !e.watchers.quiet(ws.Root) {
		consider(fsFallbackSignal(ws.Root))
	}

	return latest, found
}
