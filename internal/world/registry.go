package world

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"worldvault/internal/config"
)

// Registry holds the enabled world providers and aggregates their results.
type Registry struct {
	providers []Provider
	log       *zap.Logger
}

// NewRegistry builds a registry from the config, registering only the
// enabled providers.
func NewRegistry(cfg *config.Config, log *zap.Logger) *Registry {
	r := &Registry{log: log}
	if cfg.Providers.Java {
		r.Register(NewJavaProvider(cfg.CustomPaths.Java, log))
	}
	if cfg.Providers.Bedrock {
		r.Register(NewBedrockProvider(cfg.CustomPaths.Bedrock, log))
	}
	return r
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// Providers returns the registered providers.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// AllWorlds scans every available provider concurrently and returns a
// platform-to-worlds map. A provider that fails is logged and skipped; one
// broken platform must not hide the others.
func (r *Registry) AllWorlds(ctx context.Context) (map[string][]World, error) {
	result := make(map[string][]World)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range r.providers {
		if !p.Available() {
			continue
		}
		g.Go(func() error {
			worlds, err := p.Worlds(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				r.log.Warn("provider scan failed",
					zap.String("platform", p.Platform()), zap.Error(err))
				return nil
			}
			if len(worlds) == 0 {
				return nil
			}
			mu.Lock()
			result[p.Platform()] = worlds
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// WatchLocations returns the existing saves directories across all
// providers, for the filesystem watcher.
func (r *Registry) WatchLocations() []string {
	var dirs []string
	for _, p := range r.providers {
		if !p.Available() {
			continue
		}
		for _, loc := range p.Locations() {
			if info, err := os.Stat(loc); err == nil && info.IsDir() {
				dirs = append(dirs, loc)
			}
		}
	}
	return dedupe(dirs)
}
