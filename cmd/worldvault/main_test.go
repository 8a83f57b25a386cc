package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"worldvault/internal/config"
)

func TestResolveDestination(t *testing.T) {
	oldCfg := cfg
	defer func() { cfg = oldCfg }()
	cfg = config.DefaultConfig()

	dest, err := resolveDestination("/mnt/usb")
	if err != nil {
		t.Fatalf("resolveDestination failed: %v", err)
	}
	if dest != "/mnt/usb" {
		t.Errorf("flag should win, got %s", dest)
	}

	cfg.Backups.DefaultDestination = "/srv/backups"
	dest, err = resolveDestination("")
	if err != nil {
		t.Fatalf("resolveDestination failed: %v", err)
	}
	if dest != "/srv/backups" {
		t.Errorf("config default should win, got %s", dest)
	}

	cfg.Backups.DefaultDestination = ""
	home, homeErr := os.UserHomeDir()
	if homeErr != nil {
		t.Skipf("no home directory: %v", homeErr)
	}
	dest, err = resolveDestination("")
	if err != nil {
		t.Fatalf("resolveDestination failed: %v", err)
	}
	if dest != home {
		t.Errorf("expected home fallback %s, got %s", home, dest)
	}
}

func TestRunBackup_NoMatchLeavesNoGoroutines(t *testing.T) {
	// The signal watcher installed by runBackup must be torn down when the
	// command returns, not left blocked until process exit.
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("os/signal.signal_recv"),
		goleak.IgnoreTopFunction("os/signal.loop"),
	)

	oldCfg, oldLogger := cfg, logger
	defer func() {
		cfg, logger = oldCfg, oldLogger
		backupAll = false
		backupDest = ""
	}()

	cfg = config.DefaultConfig()
	cfg.Providers.Java = false
	cfg.Providers.Bedrock = false
	logger = zap.NewNop()
	backupAll = true
	backupDest = t.TempDir()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	err := runBackup(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "no worlds matched") {
		t.Fatalf("expected no-match error, got %v", err)
	}
}

func TestHistoryDBPath(t *testing.T) {
	oldPath := cfgPath
	defer func() { cfgPath = oldPath }()
	cfgPath = filepath.Join("/etc", "worldvault", "config.yaml")

	want := filepath.Join("/etc", "worldvault", "history.db")
	if got := historyDBPath(); got != want {
		t.Errorf("historyDBPath = %s, want %s", got, want)
	}
}
