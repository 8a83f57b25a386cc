package world

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

// makeJavaWorld creates a valid Java world folder under dir.
func makeJavaWorld(t *testing.T, dir, name string, withIcon bool) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "level.dat"), []byte{0x0a, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}
	if withIcon {
		if err := os.WriteFile(filepath.Join(path, "icon.png"), []byte("png"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

// makeBedrockWorld creates a valid Bedrock world folder under dir.
func makeBedrockWorld(t *testing.T, dir, folder, levelName string) string {
	t.Helper()
	path := filepath.Join(dir, folder)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "levelname.txt"), []byte(levelName), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestJavaProvider_Worlds(t *testing.T) {
	saves := t.TempDir()
	makeJavaWorld(t, saves, "Survival", true)
	makeJavaWorld(t, saves, "Creative Test", false)

	// Folder without level.dat is not a world
	if err := os.MkdirAll(filepath.Join(saves, "not-a-world"), 0755); err != nil {
		t.Fatal(err)
	}
	// Loose file is ignored
	if err := os.WriteFile(filepath.Join(saves, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewJavaProvider([]string{saves}, zap.NewNop())
	worlds, err := p.Worlds(context.Background())
	if err != nil {
		t.Fatalf("Worlds failed: %v", err)
	}

	byName := map[string]World{}
	for _, w := range worlds {
		if w.Platform != "Java" {
			t.Errorf("expected platform Java, got %s", w.Platform)
		}
		byName[w.Name] = w
	}

	if _, ok := byName["not-a-world"]; ok {
		t.Error("folder without level.dat reported as world")
	}
	survival, ok := byName["Survival"]
	if !ok {
		t.Fatal("Survival world not found")
	}
	if survival.Icon == "" {
		t.Error("expected icon.png picked up")
	}
	creative, ok := byName["Creative Test"]
	if !ok {
		t.Fatal("Creative Test world not found")
	}
	if creative.Icon != "" {
		t.Error("expected no icon for world without icon.png")
	}
}

func TestJavaProvider_MissingLocationSkipped(t *testing.T) {
	p := NewJavaProvider([]string{filepath.Join(t.TempDir(), "gone")}, zap.NewNop())
	worlds, err := p.Worlds(context.Background())
	if err != nil {
		t.Fatalf("Worlds failed: %v", err)
	}
	for _, w := range worlds {
		if filepath.Base(filepath.Dir(w.Path)) == "gone" {
			t.Errorf("world reported from missing location: %s", w.Path)
		}
	}
}

func TestBedrockProvider_NameFromLevelname(t *testing.T) {
	saves := t.TempDir()
	makeBedrockWorld(t, saves, "a1B2c3D4=", "My Realm\n")
	makeBedrockWorld(t, saves, "x9Y8z7W6=", "   ")

	p := NewBedrockProvider([]string{saves}, zap.NewNop())
	worlds, err := p.Worlds(context.Background())
	if err != nil {
		t.Fatalf("Worlds failed: %v", err)
	}

	names := map[string]bool{}
	for _, w := range worlds {
		names[w.Name] = true
	}
	if !names["My Realm"] {
		t.Errorf("expected display name from levelname.txt, got %v", names)
	}
	// Blank levelname falls back to the folder name
	if !names["x9Y8z7W6="] {
		t.Errorf("expected folder-name fallback, got %v", names)
	}
}

func TestScanLocations_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanLocations(ctx, []string{t.TempDir()}, "level.dat", func(path, folder string) World {
		return World{Path: path}
	})
	if err == nil {
		t.Error("expected context error")
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"/a", "/b", "/a", "/c", "/b"})
	want := []string{"/a", "/b", "/c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}
