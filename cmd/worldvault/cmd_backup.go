// This file implements the headless backup and prune commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldvault/internal/backup"
	"worldvault/internal/history"
	"worldvault/internal/world"
)

var (
	backupDest     string
	backupAll      bool
	backupWorlds   []string
	backupPlatform string
)

// backupCmd runs a one-shot backup without the TUI
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up worlds to a timestamped ZIP archive",
	Long: `Backs up the selected worlds into a single ZIP archive named
minecraft_worlds_backup_<timestamp>.zip in the destination directory.

Select worlds with --world (repeatable, matched by display name) or take
everything with --all. --platform restricts either selection to one
platform.

Examples:
  worldvault backup --all
  worldvault backup --world "Survival 2024" --world Skyblock
  worldvault backup --all --platform Bedrock --dest /mnt/usb`,
	RunE: runBackup,
}

// pruneCmd applies the retention policy without creating a new backup
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backup archives beyond the retention limit",
	RunE:  runPrune,
}

func init() {
	backupCmd.Flags().StringVar(&backupDest, "dest", "", "Destination directory (default: configured destination)")
	backupCmd.Flags().BoolVar(&backupAll, "all", false, "Back up every discovered world")
	backupCmd.Flags().StringArrayVar(&backupWorlds, "world", nil, "World display name to back up (repeatable)")
	backupCmd.Flags().StringVar(&backupPlatform, "platform", "", "Restrict selection to one platform (Java, Bedrock)")

	pruneCmd.Flags().StringVar(&backupDest, "dest", "", "Destination directory (default: configured destination)")
}

func runBackup(cmd *cobra.Command, args []string) error {
	if !backupAll && len(backupWorlds) == 0 {
		return fmt.Errorf("nothing selected: pass --all or at least one --world")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dest, err := resolveDestination(backupDest)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	selected, err := selectWorlds(ctx)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no worlds matched the selection")
	}

	fmt.Printf("Backing up %d world(s) to %s\n", len(selected), dest)

	start := time.Now()
	op := backup.NewOperation(selected, backup.Options{
		Destination:   dest,
		CompressLevel: cfg.Backups.CompressLevel,
		MaxBackups:    cfg.Backups.MaxBackups,
	}, logger)
	op.Start(ctx)

	var done backup.Done
	for ev := range op.Events() {
		switch ev := ev.(type) {
		case backup.Progress:
			fmt.Printf("  [%3d%%] %s\n", ev.Percent, ev.Message)
		case backup.Done:
			done = ev
		}
	}
	if errors.Is(done.Err, context.Canceled) {
		return errors.New("backup cancelled")
	}
	if done.Err != nil {
		return fmt.Errorf("backup failed: %w", done.Err)
	}

	fmt.Printf("✓ Archive created: %s\n", done.Archive)
	recordBackup(ctx, done.Archive, len(selected), time.Since(start))
	return nil
}

// selectWorlds scans providers and applies the --world/--platform filters.
func selectWorlds(ctx context.Context) ([]world.World, error) {
	registry := world.NewRegistry(cfg, logger)
	all, err := registry.AllWorlds(ctx)
	if err != nil {
		return nil, fmt.Errorf("world scan failed: %w", err)
	}

	wanted := make(map[string]bool, len(backupWorlds))
	for _, name := range backupWorlds {
		wanted[strings.ToLower(name)] = true
	}

	var selected []world.World
	for platform, worlds := range all {
		if backupPlatform != "" && !strings.EqualFold(platform, backupPlatform) {
			continue
		}
		for _, w := range worlds {
			if backupAll || wanted[strings.ToLower(w.Name)] {
				selected = append(selected, w)
			}
		}
	}
	return selected, nil
}

// recordBackup stores the completed backup in the history database.
// History is best effort: a failure is logged, never fatal.
func recordBackup(ctx context.Context, archive string, worlds int, took time.Duration) {
	store, err := history.Open(historyDBPath())
	if err != nil {
		logger.Warn("cannot open history store", zap.Error(err))
		return
	}
	defer store.Close()

	var size int64
	if info, err := os.Stat(archive); err == nil {
		size = info.Size()
	}

	if _, err := store.Record(ctx, history.Record{
		CreatedAt: time.Now(),
		Archive:   archive,
		SizeBytes: size,
		Worlds:    worlds,
		Duration:  took,
	}); err != nil {
		logger.Warn("cannot record backup history", zap.Error(err))
	}
}

func runPrune(cmd *cobra.Command, args []string) error {
	dest, err := resolveDestination(backupDest)
	if err != nil {
		return err
	}
	if cfg.Backups.MaxBackups <= 0 {
		fmt.Println("Retention is unlimited (backups.max_backups = 0); nothing to prune.")
		return nil
	}

	removed, err := backup.Prune(dest, cfg.Backups.MaxBackups)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Println("Nothing to prune.")
		return nil
	}
	for _, path := range removed {
		fmt.Printf("removed %s\n", path)
	}
	fmt.Printf("Pruned %d archive(s).\n", len(removed))
	return nil
}
