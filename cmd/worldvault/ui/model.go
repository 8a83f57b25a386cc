package ui

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"worldvault/internal/backup"
	"worldvault/internal/config"
	"worldvault/internal/history"
	"worldvault/internal/i18n"
	"worldvault/internal/watch"
	"worldvault/internal/world"
)

type state int

const (
	stateScanning state = iota
	statePicking
	stateRunning
	stateDone
)

// item is one selectable world row.
type item struct {
	world    world.World
	selected bool
}

// Params wires the model to the rest of the application. History and
// Watcher may be nil; the corresponding features simply disappear.
type Params struct {
	Config      *config.Config
	Bundle      *i18n.Bundle
	Registry    *world.Registry
	History     *history.Store
	Watcher     *watch.Watcher
	Logger      *zap.Logger
	Destination string
	Version     string
}

// Model is the root Bubble Tea model.
type Model struct {
	p      Params
	styles Styles

	state    state
	spinner  spinner.Model
	progress progress.Model

	items   []item
	cursor  int
	scanErr error

	width  int
	height int

	// Running backup
	op        *backup.Operation
	cancel    context.CancelFunc
	percent   int
	status    string
	startedAt time.Time

	// Terminal result
	resultErr     error
	resultArchive string

	lastBackup string
}

// Messages

type worldsMsg struct {
	items []item
	err   error
}

type rescanMsg struct{}

type backupEventMsg struct {
	ev backup.Event
	ok bool
}

type lastBackupMsg struct{ text string }

// NewModel builds the root model.
func NewModel(p Params) Model {
	styles := NewStyles(p.Config.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Selected

	pr := progress.New(progress.WithDefaultGradient())

	return Model{
		p:        p,
		styles:   styles,
		state:    stateScanning,
		spinner:  sp,
		progress: pr,
	}
}

// Init starts the first scan and the background listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.scanWorlds(),
		m.waitForChange(),
		m.loadLastBackup(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 10
		if w > 60 {
			w = 60
		}
		if w > 0 {
			m.progress.Width = w
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == stateScanning || m.state == stateRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case worldsMsg:
		m.scanErr = msg.err
		m.items = m.mergeSelection(msg.items)
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		if m.state == stateScanning {
			m.state = statePicking
		}
		return m, nil

	case rescanMsg:
		// The saves directories changed under us; refresh the list
		// unless a backup is running.
		if m.state == statePicking || m.state == stateScanning {
			return m, tea.Batch(m.scanWorlds(), m.waitForChange())
		}
		return m, m.waitForChange()

	case backupEventMsg:
		return m.handleBackupEvent(msg)

	case lastBackupMsg:
		m.lastBackup = msg.text
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.state == stateRunning {
		// A running backup can only be cancelled.
		if key == "ctrl+c" || key == "esc" {
			if m.cancel != nil {
				m.cancel()
			}
			m.status = m.p.Bundle.T("backup.cancelled")
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.state == statePicking && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.state == statePicking && m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case " ":
		if m.state == statePicking && len(m.items) > 0 {
			m.items[m.cursor].selected = !m.items[m.cursor].selected
		}

	case "a":
		if m.state == statePicking && len(m.items) > 0 {
			all := m.selectedCount() == len(m.items)
			for i := range m.items {
				m.items[i].selected = !all
			}
		}

	case "r":
		if m.state == statePicking {
			m.state = stateScanning
			return m, tea.Batch(m.spinner.Tick, m.scanWorlds())
		}

	case "enter":
		switch m.state {
		case statePicking:
			if m.selectedCount() > 0 {
				return m.startBackup()
			}
		case stateDone:
			m.state = stateScanning
			m.resultErr = nil
			m.resultArchive = ""
			return m, tea.Batch(m.spinner.Tick, m.scanWorlds())
		}
	}

	return m, nil
}

func (m Model) handleBackupEvent(msg backupEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		return m, nil
	}

	switch ev := msg.ev.(type) {
	case backup.Progress:
		m.percent = ev.Percent
		if ev.World != "" {
			m.status = m.p.Bundle.T("backup.world", ev.World)
		} else {
			m.status = ev.Message
			if ev.Percent == 90 {
				m.status = m.p.Bundle.T("backup.archive")
			}
		}
		return m, m.waitForEvent()

	case backup.Done:
		m.state = stateDone
		m.resultErr = ev.Err
		m.resultArchive = ev.Archive
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		if ev.Err == nil {
			return m, m.recordBackup(ev.Archive)
		}
		return m, nil
	}

	return m, m.waitForEvent()
}

// startBackup launches the worker and switches to the progress view.
func (m Model) startBackup() (tea.Model, tea.Cmd) {
	var selected []world.World
	for _, it := range m.items {
		if it.selected {
			selected = append(selected, it.world)
		}
	}

	if err := os.MkdirAll(m.p.Destination, 0755); err != nil {
		m.state = stateDone
		m.resultErr = err
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	op := backup.NewOperation(selected, backup.Options{
		Destination:   m.p.Destination,
		CompressLevel: m.p.Config.Backups.CompressLevel,
		MaxBackups:    m.p.Config.Backups.MaxBackups,
	}, m.p.Logger)
	op.Start(ctx)

	m.op = op
	m.cancel = cancel
	m.state = stateRunning
	m.percent = 0
	m.status = ""
	m.startedAt = time.Now()

	return m, tea.Batch(m.spinner.Tick, m.waitForEvent())
}

// Commands

// scanWorlds discovers worlds off the UI thread.
func (m Model) scanWorlds() tea.Cmd {
	registry := m.p.Registry
	return func() tea.Msg {
		all, err := registry.AllWorlds(context.Background())
		if err != nil {
			return worldsMsg{err: err}
		}

		platforms := make([]string, 0, len(all))
		for platform := range all {
			platforms = append(platforms, platform)
		}
		sort.Strings(platforms)

		var items []item
		for _, platform := range platforms {
			worlds := all[platform]
			sort.Slice(worlds, func(i, j int) bool { return worlds[i].Name < worlds[j].Name })
			for _, w := range worlds {
				items = append(items, item{world: w})
			}
		}
		return worldsMsg{items: items}
	}
}

// waitForEvent listens for the next backup event.
func (m Model) waitForEvent() tea.Cmd {
	op := m.op
	if op == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-op.Events()
		return backupEventMsg{ev: ev, ok: ok}
	}
}

// waitForChange listens for filesystem changes in the saves directories.
func (m Model) waitForChange() tea.Cmd {
	w := m.p.Watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return rescanMsg{}
	}
}

// loadLastBackup refreshes the "last backup" line from the history store.
func (m Model) loadLastBackup() tea.Cmd {
	store := m.p.History
	bundle := m.p.Bundle
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		rec, ok, err := store.Last(context.Background())
		if err != nil || !ok {
			return lastBackupMsg{text: bundle.T("picker.never_backed_up")}
		}
		return lastBackupMsg{text: bundle.T("picker.last_backup",
			rec.CreatedAt.Local().Format("2006-01-02 15:04"))}
	}
}

// recordBackup persists a successful backup and refreshes the last-backup
// line.
func (m Model) recordBackup(archive string) tea.Cmd {
	store := m.p.History
	log := m.p.Logger
	worlds := m.selectedCount()
	took := time.Since(m.startedAt)
	reload := m.loadLastBackup()

	if store == nil {
		return nil
	}
	return func() tea.Msg {
		var size int64
		if info, err := os.Stat(archive); err == nil {
			size = info.Size()
		}
		if _, err := store.Record(context.Background(), history.Record{
			CreatedAt: time.Now(),
			Archive:   archive,
			SizeBytes: size,
			Worlds:    worlds,
			Duration:  took,
		}); err != nil {
			log.Warn("cannot record backup history", zap.Error(err))
		}
		if reload == nil {
			return nil
		}
		return reload()
	}
}

// mergeSelection reapplies the current selection to a fresh scan result so
// a background rescan never drops what the user picked.
func (m Model) mergeSelection(fresh []item) []item {
	selected := make(map[string]bool, len(m.items))
	for _, it := range m.items {
		if it.selected {
			selected[it.world.Path] = true
		}
	}
	for i := range fresh {
		fresh[i].selected = selected[fresh[i].world.Path]
	}
	return fresh
}

func (m Model) selectedCount() int {
	n := 0
	for _, it := range m.items {
		if it.selected {
			n++
		}
	}
	return n
}

// View renders the current state.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.p.Bundle.T("app.title")))
	b.WriteString("  ")
	b.WriteString(m.styles.Tagline.Render(m.p.Bundle.T("app.tagline")))
	b.WriteString("\n\n")

	switch m.state {
	case stateScanning:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.p.Bundle.T("picker.scanning"))
		b.WriteString("\n")

	case statePicking:
		m.viewPicker(&b)

	case stateRunning:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
		b.WriteString(m.progress.ViewAs(float64(m.percent) / 100))
		b.WriteString(fmt.Sprintf("  %d%%\n", m.percent))

	case stateDone:
		m.viewResult(&b)
	}

	return b.String()
}

func (m Model) viewPicker(b *strings.Builder) {
	b.WriteString(m.styles.Muted.Render(m.p.Bundle.T("picker.destination", m.p.Destination)))
	b.WriteString("\n")
	if m.lastBackup != "" {
		b.WriteString(m.styles.Muted.Render(m.lastBackup))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.scanErr != nil {
		b.WriteString(m.styles.Error.Render(m.scanErr.Error()))
		b.WriteString("\n")
	}

	if len(m.items) == 0 {
		b.WriteString(m.p.Bundle.T("picker.none"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render(m.p.Bundle.T("picker.help")))
		b.WriteString("\n")
		return
	}

	b.WriteString(m.styles.Platform.Render(m.p.Bundle.T("picker.title")))
	b.WriteString("\n")

	platform := ""
	for i, it := range m.items {
		if it.world.Platform != platform {
			platform = it.world.Platform
			b.WriteString("\n")
			b.WriteString(m.styles.Platform.Render(platform))
			b.WriteString("\n")
		}

		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("▸ ")
		}
		check := "[ ]"
		name := it.world.Name
		if it.selected {
			check = m.styles.Selected.Render("[x]")
			name = m.styles.Selected.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, check, name))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.p.Bundle.T("picker.help")))
	b.WriteString("\n")
}

func (m Model) viewResult(b *strings.Builder) {
	if m.resultErr != nil {
		b.WriteString(m.styles.Error.Render(m.p.Bundle.T("backup.failed", m.resultErr.Error())))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.Success.Render(m.p.Bundle.T("backup.complete")))
		b.WriteString("\n")
		b.WriteString(m.p.Bundle.T("backup.saved_to", m.resultArchive))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.p.Bundle.T("done.help")))
	b.WriteString("\n")
}
