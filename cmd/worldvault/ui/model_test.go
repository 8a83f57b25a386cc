package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"worldvault/internal/backup"
	"worldvault/internal/config"
	"worldvault/internal/i18n"
	"worldvault/internal/world"
)

func testModel(t *testing.T) Model {
	t.Helper()

	bundle, err := i18n.NewBundle("en")
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	cfg := config.DefaultConfig()
	return NewModel(Params{
		Config:      cfg,
		Bundle:      bundle,
		Registry:    world.NewRegistry(cfg, zap.NewNop()),
		Logger:      zap.NewNop(),
		Destination: t.TempDir(),
		Version:     "test",
	})
}

func withWorlds(m Model, worlds ...world.World) Model {
	items := make([]item, len(worlds))
	for i, w := range worlds {
		items[i] = item{world: w}
	}
	next, _ := m.Update(worldsMsg{items: items})
	return next.(Model)
}

func key(m Model, s string) Model {
	var msg tea.KeyMsg
	switch s {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelScanToPicker(t *testing.T) {
	m := testModel(t)
	if m.state != stateScanning {
		t.Fatalf("initial state = %d, want scanning", m.state)
	}

	m = withWorlds(m,
		world.World{Path: "/a", Name: "Alpha", Platform: "Java"},
		world.World{Path: "/b", Name: "Beta", Platform: "Bedrock"},
	)
	if m.state != statePicking {
		t.Fatalf("state after worldsMsg = %d, want picking", m.state)
	}
	view := m.View()
	if !strings.Contains(view, "Alpha") || !strings.Contains(view, "Beta") {
		t.Fatalf("view missing worlds:\n%s", view)
	}
}

func TestModelToggleAndSelectAll(t *testing.T) {
	m := testModel(t)
	m = withWorlds(m,
		world.World{Path: "/a", Name: "Alpha", Platform: "Java"},
		world.World{Path: "/b", Name: "Beta", Platform: "Java"},
	)

	m = key(m, " ")
	if m.selectedCount() != 1 {
		t.Fatalf("selected after space = %d, want 1", m.selectedCount())
	}
	if !m.items[0].selected {
		t.Fatal("cursor row not selected")
	}

	m = key(m, "j")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}

	m = key(m, "a")
	if m.selectedCount() != 2 {
		t.Fatalf("selected after a = %d, want 2", m.selectedCount())
	}
	m = key(m, "a")
	if m.selectedCount() != 0 {
		t.Fatalf("selected after second a = %d, want 0", m.selectedCount())
	}
}

func TestModelRescanKeepsSelection(t *testing.T) {
	m := testModel(t)
	m = withWorlds(m,
		world.World{Path: "/a", Name: "Alpha", Platform: "Java"},
		world.World{Path: "/b", Name: "Beta", Platform: "Java"},
	)
	m = key(m, " ")

	m = withWorlds(m,
		world.World{Path: "/a", Name: "Alpha", Platform: "Java"},
		world.World{Path: "/b", Name: "Beta", Platform: "Java"},
		world.World{Path: "/c", Name: "Gamma", Platform: "Bedrock"},
	)
	if len(m.items) != 3 {
		t.Fatalf("items = %d, want 3", len(m.items))
	}
	if !m.items[0].selected {
		t.Fatal("selection for /a lost across rescan")
	}
	if m.items[2].selected {
		t.Fatal("new world unexpectedly selected")
	}
}

func TestModelProgressEvents(t *testing.T) {
	m := testModel(t)
	m = withWorlds(m, world.World{Path: "/a", Name: "Alpha", Platform: "Java"})
	m.state = stateRunning

	next, _ := m.Update(backupEventMsg{ev: backup.Progress{Percent: 45, World: "Alpha"}, ok: true})
	m = next.(Model)
	if m.percent != 45 {
		t.Fatalf("percent = %d, want 45", m.percent)
	}
	if !strings.Contains(m.status, "Alpha") {
		t.Fatalf("status = %q, want world name", m.status)
	}

	next, _ = m.Update(backupEventMsg{ev: backup.Done{Archive: "/dest/x.zip"}, ok: true})
	m = next.(Model)
	if m.state != stateDone {
		t.Fatalf("state = %d, want done", m.state)
	}
	view := m.View()
	if !strings.Contains(view, "/dest/x.zip") {
		t.Fatalf("view missing archive path:\n%s", view)
	}
}

func TestModelFailedBackupView(t *testing.T) {
	m := testModel(t)
	m.state = stateRunning

	next, _ := m.Update(backupEventMsg{ev: backup.Done{Err: errors.New("disk full")}, ok: true})
	m = next.(Model)
	if m.state != stateDone {
		t.Fatalf("state = %d, want done", m.state)
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Fatalf("view missing error:\n%s", m.View())
	}
}

func TestModelEnterWithoutSelectionDoesNothing(t *testing.T) {
	m := testModel(t)
	m = withWorlds(m, world.World{Path: "/a", Name: "Alpha", Platform: "Java"})

	m = key(m, "enter")
	if m.state != statePicking {
		t.Fatalf("state = %d, want picking", m.state)
	}
}

func TestModelIgnoresQuitWhileRunning(t *testing.T) {
	m := testModel(t)
	m.state = stateRunning

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	if m.state != stateRunning {
		t.Fatalf("state = %d, want running", m.state)
	}
	if cmd != nil {
		t.Fatal("quit command issued while backup running")
	}
}

func TestNewStylesThemes(t *testing.T) {
	dark := NewStyles("dark")
	light := NewStyles("light")
	if dark.Theme == light.Theme {
		t.Fatal("themes should differ")
	}
	if NewStyles("bogus").Theme != dark.Theme {
		t.Fatal("unknown theme should fall back to dark")
	}
}
