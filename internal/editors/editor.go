// Package editors discovers installed editors and launches them against a
// resolved file, line, and column.
package editors

import (
	"context"
	"os"
)

// OpenOptions carries the position and window preference for a launch.
type OpenOptions struct {
	Line      *int
	Col       *int
	NewWindow bool
}

// Instance describes one running copy of an editor the registry can see.
type Instance struct {
	PID       int
	Workspace string
	Title     string
}

// Manager is the contract every concrete editor implements. FindBinary is
// split out from IsInstalled so callers that already have a cached path
// (the binary cache, §"Binary cache (per editor)") can skip rediscovery.
type Manager interface {
	ID() string
	DisplayName() string
	IsInstalled(ctx context.Context) bool
	FindBinary(ctx context.Context) (string, bool)
	Open(ctx context.Context, path string, opts OpenOptions) error
	RunningInstances(ctx context.Context) ([]Instance, error)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
