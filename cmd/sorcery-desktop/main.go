// Command sorcery-desktop is the srcuri:// protocol handler entry point.
// It is registered as the OS handler for the scheme; each activation
// (argv-style launch, OS deep-link event, or a forward from an
// already-running instance) resolves to exactly one dispatcher.Dispatch
// call.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/browserup/sorcery-desktop/internal/dispatcher"
	"github.com/browserup/sorcery-desktop/internal/editors"
	"github.com/browserup/sorcery-desktop/internal/gitrepo"
	"github.com/browserup/sorcery-desktop/internal/ipc"
	"github.com/browserup/sorcery-desktop/internal/mru"
	"github.com/browserup/sorcery-desktop/internal/resolver"
	"github.com/browserup/sorcery-desktop/internal/settings"
	"github.com/browserup/sorcery-desktop/logging"
	"github.com/browserup/sorcery-desktop/pkg/paths"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	logger := logging.NewLogger("sorcery-desktop")

	if err := paths.EnsureDirs(); err != nil {
		logger.WithError(err).Error("failed to create application directories")
		return 1
	}

	urls := urlsFromArgv(argv)

	lockPath := paths.ForwarderSocketPath()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, shutdown, err := buildDispatcher(logger)
	if err != nil {
		logger.WithError(err).Error("failed to initialize dispatcher")
		return 1
	}
	defer shutdown()

	// Start our own forwarder before deciding primary-vs-secondary: the
	// lock file needs a real, already-listening address to hand to a
	// future launch, not a placeholder filled in after the fact.
	server, serveErr := ipc.Serve(ctx, func(ctx context.Context, forwarded []string) {
		for _, u := range forwarded {
			dispatchOne(ctx, d, logger, u)
		}
	}, logger)

	becamePrimary := false
	if serveErr != nil {
		logger.WithError(serveErr).Warn("single-instance forwarder failed to start; continuing standalone")
	} else if existingAddr, acquired, lockErr := ipc.AcquireOrDiscover(lockPath, server.Addr()); lockErr != nil {
		logger.WithError(lockErr).Warn("failed to acquire single-instance lock file")
	} else if !acquired {
		if len(urls) > 0 {
			fwCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			fwErr := ipc.Forward(fwCtx, existingAddr, urls)
			cancel()
			if fwErr == nil {
				logger.WithField("urls", urls).Info("forwarded to running instance")
				return 0
			}
			logger.WithError(fwErr).Warn("could not forward to the advertised running instance, dispatching locally instead")
		}
	} else {
		becamePrimary = true
		defer func() { _ = ipc.Release(lockPath) }()
	}

	exitCode := 0
	for _, u := range urls {
		if !dispatchOne(ctx, d, logger, u) {
			exitCode = 1
		}
	}

	if becamePrimary {
		// Stay alive as the primary instance so later launches (deep-link
		// events, or a second process forwarding to us) have someone to
		// deliver to.
		<-ctx.Done()
	}

	return exitCode
}

// urlsFromArgv extracts srcuri:// URLs from CLI args: the argv-style entry
// point takes the first non-flag argument as the URL; a JSON array also
// passed as a single argument is treated as the deep-link event form.
func urlsFromArgv(argv []string) []string {
	for _, arg := range argv {
		if len(arg) == 0 || arg[0] == '-' {
			continue
		}
		var asArray []string
		if json.Unmarshal([]byte(arg), &asArray) == nil {
			return asArray
		}
		return []string{arg}
	}
	return nil
}

func dispatchOne(ctx context.Context, d *dispatcher.Dispatcher, logger *logrus.Entry, url string) bool {
	result := d.Dispatch(ctx, url)
	if result.Kind == dispatcher.KindError {
		logger.WithFields(logrus.Fields{"url": url, "error_kind": result.ErrKind, "detail": result.Detail}).Warn("dispatch failed")
		fmt.Fprintf(os.Stderr, "error: %s: %s\n", result.ErrKind, result.Detail)
		return false
	}
	return true
}

func buildDispatcher(logger *logrus.Entry) (*dispatcher.Dispatcher, func(), error) {
	defaults := settings.Default(paths.ConfigDir(), "", paths.WorktreeRoot())
	settingsStore := settings.NewStore(paths.SettingsPath(), defaults, settings.Validate)
	if err := settingsStore.Load(); err != nil {
		logger.WithError(err).Warn("settings file could not be loaded, using defaults")
	}

	mruStore := mru.NewStore(paths.MRUPath())
	mruStore.Load()

	repo := gitrepo.New()
	res := resolver.New(settingsStore, mruStore)
	registry := editors.NewDefaultRegistry()
	registry.ApplyPreferredTerminal(settingsStore.Get().PreferredTerminal)

	d := dispatcher.New(settingsStore, res, registry, repo, mruStore, logger)

	shutdown := func() {
		if err := mruStore.Persist(); err != nil {
			logger.WithError(err).Warn("failed to persist MRU state on shutdown")
		}
	}

	return d, shutdown, nil
}
