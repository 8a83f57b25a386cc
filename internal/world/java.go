package world

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// javaMarker identifies a valid Java Edition world folder.
const javaMarker = "level.dat"

// JavaProvider discovers Minecraft Java Edition worlds. Beyond the stock
// .minecraft/saves directory it looks inside MultiMC, PrismLauncher, and
// ATLauncher instances, plus any custom paths from the config.
type JavaProvider struct {
	custom []string
	log    *zap.Logger
}

// NewJavaProvider creates a Java world provider. custom lists extra saves
// directories to scan in addition to the standard locations.
func NewJavaProvider(custom []string, log *zap.Logger) *JavaProvider {
	return &JavaProvider{custom: custom, log: log}
}

// Platform returns the platform name.
func (p *JavaProvider) Platform() string { return "Java" }

// Available reports whether Java Edition can exist here. Java runs on every
// desktop OS, so this is always true.
func (p *JavaProvider) Available() bool { return true }

// Locations returns every saves directory worth scanning, duplicates
// removed preserving order.
func (p *JavaProvider) Locations() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	var locations []string

	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			locations = append(locations, filepath.Join(appdata, ".minecraft", "saves"))
		}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			// Microsoft Store edition of the Java launcher
			locations = append(locations, filepath.Join(local,
				"Packages", "Microsoft.4297127D64EC6_8wekyb3d8bbwe",
				"LocalState", "games", "com.mojang", ".minecraft", "saves"))
		}
	case "darwin":
		locations = append(locations,
			filepath.Join(home, "Library", "Application Support", "minecraft", "saves"),
			filepath.Join(home, "Library", "Application Support", "minecraftlauncher", "saves"),
		)
	default: // linux and friends
		locations = append(locations,
			filepath.Join(home, ".minecraft", "saves"),
			// Flatpak
			filepath.Join(home, ".var", "app", "com.mojang.Minecraft", ".minecraft", "saves"),
			// Snap
			filepath.Join(home, "snap", "minecraft", "current", ".minecraft", "saves"),
			// Steam Deck / Proton prefix for the official launcher
			filepath.Join(home, ".steam", "steam", "steamapps", "compatdata", "1745772215",
				"pfx", "drive_c", "users", "steamuser", "AppData", "Roaming", ".minecraft", "saves"),
		)
	}

	locations = append(locations, p.launcherInstances(home)...)
	locations = append(locations, p.custom...)

	return dedupe(locations)
}

// launcherInstances finds saves directories inside MultiMC, PrismLauncher,
// and ATLauncher instances.
func (p *JavaProvider) launcherInstances(home string) []string {
	type launcher struct {
		dir string
		// ATLauncher keeps instances at the top level rather than under
		// an instances/ subdirectory
		flat bool
	}

	var launchers []launcher
	switch runtime.GOOS {
	case "windows":
		appdata := os.Getenv("APPDATA")
		if appdata == "" {
			return nil
		}
		launchers = []launcher{
			{dir: filepath.Join(appdata, "MultiMC")},
			{dir: filepath.Join(appdata, "PrismLauncher")},
			{dir: filepath.Join(appdata, "ATLauncher", "instances"), flat: true},
		}
	case "darwin":
		launchers = []launcher{
			{dir: filepath.Join(home, "Library", "Application Support", "MultiMC")},
			{dir: filepath.Join(home, "Library", "Application Support", "PrismLauncher")},
			{dir: filepath.Join(home, "Library", "Application Support", "ATLauncher", "instances"), flat: true},
		}
	default:
		launchers = []launcher{
			{dir: filepath.Join(home, ".local", "share", "multimc")},
			{dir: filepath.Join(home, "MultiMC")},
			{dir: filepath.Join(home, ".local", "share", "PrismLauncher")},
			{dir: filepath.Join(home, "PrismLauncher")},
			{dir: filepath.Join(home, ".local", "share", "atlauncher", "instances"), flat: true},
		}
	}

	var locations []string
	for _, l := range launchers {
		instancesDir := l.dir
		if !l.flat {
			instancesDir = filepath.Join(l.dir, "instances")
		}

		entries, err := os.ReadDir(instancesDir)
		if err != nil {
			continue
		}
		p.log.Debug("scanning launcher instances", zap.String("dir", instancesDir))

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			instance := filepath.Join(instancesDir, entry.Name())

			if l.flat {
				saves := filepath.Join(instance, ".minecraft", "saves")
				if _, err := os.Stat(saves); err == nil {
					locations = append(locations, saves)
				}
				continue
			}

			// MultiMC and Prism mark real instances with instance.cfg
			if _, err := os.Stat(filepath.Join(instance, "instance.cfg")); err != nil {
				continue
			}
			mcDir := filepath.Join(instance, ".minecraft")
			if _, err := os.Stat(mcDir); err != nil {
				// Some packs use "minecraft" without the dot
				mcDir = filepath.Join(instance, "minecraft")
			}
			saves := filepath.Join(mcDir, "saves")
			if _, err := os.Stat(saves); err == nil {
				locations = append(locations, saves)
			}
		}
	}
	return locations
}

// Worlds scans all locations for folders containing level.dat.
func (p *JavaProvider) Worlds(ctx context.Context) ([]World, error) {
	locations := p.Locations()
	p.log.Debug("scanning for Java worlds", zap.Int("locations", len(locations)))

	worlds, err := scanLocations(ctx, locations, javaMarker, func(path, folder string) World {
		return World{
			Path:     path,
			Name:     folder,
			Platform: p.Platform(),
			Icon:     existingIcon(filepath.Join(path, "icon.png")),
		}
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("Java scan complete", zap.Int("worlds", len(worlds)))
	return worlds, nil
}
