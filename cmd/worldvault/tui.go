package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"worldvault/cmd/worldvault/ui"
	"worldvault/internal/history"
	"worldvault/internal/i18n"
	"worldvault/internal/watch"
	"worldvault/internal/world"
)

// runTUI starts the interactive world picker. This is the default when the
// binary is invoked with no subcommand.
func runTUI() error {
	bundle, err := i18n.NewBundle(cfg.Appearance.Language)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	dest, err := resolveDestination("")
	if err != nil {
		return err
	}

	registry := world.NewRegistry(cfg, logger)

	// History and the directory watcher are conveniences; the picker
	// works without either.
	var store *history.Store
	if s, err := history.Open(historyDBPath()); err != nil {
		logger.Warn("backup history unavailable", zap.Error(err))
	} else {
		store = s
		defer store.Close()
	}

	var watcher *watch.Watcher
	if dirs := registry.WatchLocations(); len(dirs) > 0 {
		w, err := watch.New(dirs, logger)
		if err != nil {
			logger.Warn("directory watcher unavailable", zap.Error(err))
		} else if err := w.Start(context.Background()); err != nil {
			logger.Warn("directory watcher unavailable", zap.Error(err))
		} else {
			watcher = w
			defer watcher.Stop()
		}
	}

	model := ui.NewModel(ui.Params{
		Config:      cfg,
		Bundle:      bundle,
		Registry:    registry,
		History:     store,
		Watcher:     watcher,
		Logger:      logger,
		Destination: dest,
		Version:     Version,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
