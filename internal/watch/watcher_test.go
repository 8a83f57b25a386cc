package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestWatcher_Notifies(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := New([]string{dir}, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// A new world folder appears.
	if err := os.Mkdir(filepath.Join(dir, "NewWorld"), 0755); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification received")
	}
}

func TestWatcher_CoalescesBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := New([]string{dir}, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		if err := os.WriteFile(filepath.Join(dir, "f"), []byte{byte(i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification received")
	}

	// The burst collapses into at most one pending notification.
	select {
	case <-w.Changes():
		// One trailing notification is acceptable when writes straddle
		// the debounce window; a second is not.
		select {
		case <-w.Changes():
			t.Error("burst produced more than two notifications")
		case <-time.After(w.debounce * 3):
		}
	case <-time.After(w.debounce * 3):
	}
}

func TestWatcher_MissingDirIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New([]string{filepath.Join(t.TempDir(), "gone")}, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	w.Stop()
}

func TestWatcher_StopIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New([]string{t.TempDir()}, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	w.Stop()
	w.Stop()
}
