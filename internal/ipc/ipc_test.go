package ipc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestServeAndForward(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan []string, 1)
	srv, err := Serve(ctx, func(_ context.Context, urls []string) {
		received <- urls
	}, nil)
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}

	if err := Forward(context.Background(), srv.Addr(), []string{"srcuri://proj/a.rs:1"}); err != nil {
		t.Fatalf("Forward: %v", err)
	}

	select {
	case urls := <-received:
		if len(urls) != 1 || urls[0] != "srcuri://proj/a.rs:1" {
			t.Fatalf("unexpected urls: %v", urls)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for forwarded urls")
	}
}

func TestAcquireOrDiscover_SecondCallFindsFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sorcery-desktop.lock")

	_, acquired, err := AcquireOrDiscover(path, "127.0.0.1:9999")
	if err != nil {
		t.Fatalf("first AcquireOrDiscover: %v", err)
	}
	if !acquired {
		t.Fatal("expected first caller to acquire the lock")
	}

	addr, acquired, err := AcquireOrDiscover(path, "127.0.0.1:8888")
	if err != nil {
		t.Fatalf("second AcquireOrDiscover: %v", err)
	}
	if acquired {
		t.Fatal("expected second caller to discover the existing instance, not acquire")
	}
	if addr != "127.0.0.1:9999" {
		t.Fatalf("expected discovered addr 127.0.0.1:9999, got %s", addr)
	}
}

func TestAcquireOrDiscover_StaleLockIsReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sorcery-desktop.lock")

	if err := writeStaleLock(path); err != nil {
		t.Fatalf("writeStaleLock: %v", err)
	}

	_, acquired, err := AcquireOrDiscover(path, "127.0.0.1:7777")
	if err != nil {
		t.Fatalf("AcquireOrDiscover: %v", err)
	}
	if !acquired {
		t.Fatal("expected stale lock to be replaced and acquired")
	}
}

func writeStaleLock(path string) error {
	b, err := marshalErr(lockRecord{PID: 999999999, Addr: "127.0.0.1:1"})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
