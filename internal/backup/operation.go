// Package backup implements the background worker that copies selected
// worlds into a staging area and compresses them into a single timestamped
// ZIP archive, reporting progress back to the caller over a channel.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"worldvault/internal/world"
)

// ErrNoWorlds is reported when a backup is started with nothing selected.
var ErrNoWorlds = errors.New("no worlds selected for backup")

// Event is a progress or completion notification from a running Operation.
type Event interface{ event() }

// Progress reports partial completion. Percent is monotonically
// non-decreasing; the copy phase covers 0-90 and compression the final 10.
type Progress struct {
	Percent int
	World   string // world currently being copied, empty during compression
	Message string
}

// Done is the terminal event. Exactly one Done is sent per operation, after
// which the event channel closes. Archive is the created ZIP path on
// success.
type Done struct {
	Err     error
	Archive string
}

func (Progress) event() {}
func (Done) event()     {}

// Options configures an Operation.
type Options struct {
	// Destination directory for the archive. Must exist.
	Destination string

	// Deflate level, 0-9. Values outside the range fall back to the
	// flate default.
	CompressLevel int

	// Archives to keep in Destination after a successful backup;
	// 0 disables pruning.
	MaxBackups int
}

// Operation is a one-shot background backup of a set of worlds. Create it
// with NewOperation, call Start once, then drain Events.
type Operation struct {
	worlds []world.World
	opts   Options
	log    *zap.Logger
	events chan Event
}

// NewOperation prepares a backup of the given worlds.
func NewOperation(worlds []world.World, opts Options, log *zap.Logger) *Operation {
	return &Operation{
		worlds: worlds,
		opts:   opts,
		log:    log,
		events: make(chan Event, 16),
	}
}

// Events returns the channel the operation reports on. The channel closes
// after the terminal Done event.
func (o *Operation) Events() <-chan Event {
	return o.events
}

// Start launches the backup in a goroutine and returns immediately.
func (o *Operation) Start(ctx context.Context) {
	go o.run(ctx)
}

func (o *Operation) run(ctx context.Context) {
	defer close(o.events)

	archive, err := o.backup(ctx)
	if err != nil {
		o.log.Error("backup failed", zap.Error(err))
		o.events <- Done{Err: err}
		return
	}

	if o.opts.MaxBackups > 0 {
		removed, err := Prune(o.opts.Destination, o.opts.MaxBackups)
		if err != nil {
			// Retention is best effort; the new archive is already safe.
			o.log.Warn("pruning old backups failed", zap.Error(err))
		} else if len(removed) > 0 {
			o.log.Info("pruned old backups", zap.Int("removed", len(removed)))
		}
	}

	o.log.Info("backup complete", zap.String("archive", archive))
	o.events <- Done{Archive: archive}
}

// backup stages every world, writes per-world metadata, and compresses the
// staging tree into the archive. The staging directory is removed whether
// or not the backup succeeds.
func (o *Operation) backup(ctx context.Context) (string, error) {
	total := len(o.worlds)
	if total == 0 {
		return "", ErrNoWorlds
	}

	timestamp := time.Now().Format("20060102_150405")
	archive := filepath.Join(o.opts.Destination, fmt.Sprintf("minecraft_worlds_backup_%s.zip", timestamp))

	staging, err := os.MkdirTemp(o.opts.Destination, "temp_backup")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	for i, w := range o.worlds {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		// The copy phase owns the first 90%; the rest belongs to
		// compression.
		o.events <- Progress{
			Percent: i * 90 / total,
			World:   w.Name,
			Message: fmt.Sprintf("Backing up %s...", w.Name),
		}
		o.log.Debug("staging world", zap.String("world", w.Name), zap.String("path", w.Path))

		platformDir := filepath.Join(staging, w.Platform)
		if err := os.MkdirAll(platformDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create staging platform dir: %w", err)
		}

		staged := filepath.Join(platformDir, filepath.Base(w.Path))
		if err := copyTree(ctx, w.Path, staged); err != nil {
			return "", fmt.Errorf("failed to copy world %s: %w", w.Name, err)
		}

		if err := writeMetadata(staged, w, time.Now()); err != nil {
			return "", fmt.Errorf("failed to write metadata for %s: %w", w.Name, err)
		}
	}

	o.events <- Progress{Percent: 90, Message: "Creating archive..."}

	if err := writeArchive(ctx, staging, archive, o.opts.CompressLevel); err != nil {
		// Don't leave a truncated archive behind.
		_ = os.Remove(archive)
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	o.events <- Progress{Percent: 100, Message: "Backup complete"}
	return archive, nil
}
