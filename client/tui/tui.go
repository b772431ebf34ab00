// Package tui renders the todo list in the terminal and translates key
// presses into view-controller actions. It is presentation glue: all list
// state, optimistic updates and rollbacks live in the view controller.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo-app/client"
	"todo-app/client/view"
)

type inputMode int

const (
	modeList inputMode = iota
	modeAdd
	modeEdit
	modeSearch
)

// syncMsg reports that a controller operation finished and the local copy of
// the controller state should be re-read.
type syncMsg struct {
	err error
}

// Model is the bubbletea model for the todo client.
type Model struct {
	ctrl          *view.Controller
	settings      view.Settings
	settingsStore *view.SettingsStore
	styles        Styles

	items  []client.Todo
	meta   *client.Meta
	errMsg string

	mode   inputMode
	input  textinput.Model
	editID string
	cursor int
	status string
	width  int
	height int
}

// New creates the TUI model. Settings come pre-loaded; changes are saved
// through the settings store as they happen.
func New(ctrl *view.Controller, settings view.Settings, settingsStore *view.SettingsStore) Model {
	ti := textinput.New()
	ti.CharLimit = 255
	return Model{
		ctrl:          ctrl,
		settings:      settings,
		settingsStore: settingsStore,
		styles:        NewStyles(settings),
		input:         ti,
	}
}

func (m Model) Init() tea.Cmd {
	return m.run(m.ctrl.Refresh)
}

// run executes a controller operation off the update loop and reports back.
func (m Model) run(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return syncMsg{err: fn(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case syncMsg:
		m.items = m.ctrl.Items()
		m.meta = m.ctrl.Meta()
		m.errMsg = m.ctrl.Err()
		if notes := m.ctrl.Notifications(); len(notes) > 0 {
			m.status = m.renderNote(notes[len(notes)-1])
		}
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	if m.mode != modeList {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "New todo title"
		m.input.SetValue("")
		m.input.Focus()

	case "e":
		if item, ok := m.current(); ok {
			m.mode = modeEdit
			m.editID = item.ID
			m.input.Placeholder = ""
			m.input.SetValue(item.Title)
			m.input.Focus()
		}

	case "/":
		m.mode = modeSearch
		m.input.Placeholder = "Search titles"
		m.input.SetValue(m.ctrl.Search())
		m.input.Focus()

	case " ", "x":
		if item, ok := m.current(); ok && item.Kind != client.KindNote {
			id := item.ID
			return m, m.run(func(ctx context.Context) error { return m.ctrl.Toggle(ctx, id) })
		}

	case "d":
		if item, ok := m.current(); ok {
			id := item.ID
			return m, m.run(func(ctx context.Context) error { return m.ctrl.Delete(ctx, id) })
		}

	case "f":
		next := nextFilter(m.ctrl.Filter())
		return m, m.run(func(ctx context.Context) error { return m.ctrl.SetFilter(ctx, next) })

	case "right", "l":
		return m, m.run(m.ctrl.NextPage)

	case "left", "h":
		return m, m.run(m.ctrl.PrevPage)

	case "r":
		return m, m.run(m.ctrl.Refresh)

	case "t":
		m.settings.Mode = cycle(Modes, m.settings.Mode)
		m.saveSettings()

	case "p":
		m.settings.Palette = cycle(PaletteNames, m.settings.Palette)
		m.styles = NewStyles(m.settings)
		m.saveSettings()

	case "S":
		if m.settings.DevMode {
			return m, m.run(m.ctrl.Seed)
		}

	case "D":
		if m.settings.DevMode {
			return m, m.run(m.ctrl.ClearAll)
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil

	case "enter":
		value := m.input.Value()
		mode := m.mode
		editID := m.editID
		m.mode = modeList
		m.input.Blur()
		switch mode {
		case modeAdd:
			if strings.TrimSpace(value) == "" {
				return m, nil
			}
			return m, m.run(func(ctx context.Context) error { return m.ctrl.Create(ctx, value, client.KindTask) })
		case modeEdit:
			return m, m.run(func(ctx context.Context) error { return m.ctrl.Rename(ctx, editID, value) })
		case modeSearch:
			return m, m.run(func(ctx context.Context) error { return m.ctrl.SetSearch(ctx, value) })
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render("✖ "+m.errMsg) + m.styles.Muted.Render("  (r to retry)"))
		b.WriteString("\n\n")
	}

	if len(m.items) == 0 && m.errMsg == "" {
		b.WriteString(m.styles.Muted.Render(m.emptyText()))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		b.WriteString(m.renderItem(i, item))
		b.WriteString("\n")
	}

	if m.mode != modeList {
		b.WriteString("\n")
		b.WriteString(m.inputLabel() + " " + m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n" + m.styles.Help.Render(m.helpText()))
	return b.String()
}

func (m Model) header() string {
	title := m.styles.Title.Render("Todos")
	filter := m.styles.Accent.Render(m.ctrl.Filter())
	if m.meta == nil {
		return fmt.Sprintf("%s  %s", title, filter)
	}
	counts := fmt.Sprintf("%s %d  %s %d  %s %d",
		m.styles.Muted.Render("all"), m.meta.Counts.All,
		m.styles.Accent.Render("active"), m.meta.Counts.Active,
		m.styles.Success.Render("done"), m.meta.Counts.Completed,
	)
	pages := m.meta.TotalPages
	if pages < 1 {
		pages = 1
	}
	page := m.styles.Muted.Render(fmt.Sprintf("page %d/%d", m.meta.Page, pages))
	return fmt.Sprintf("%s  %s  %s  %s", title, filter, counts, page)
}

func (m Model) renderItem(i int, item client.Todo) string {
	var glyph, title string
	switch {
	case item.Kind == client.KindNote:
		glyph = m.styles.Accent.Render(noteGlyph)
		title = item.Title
	case item.Completed:
		glyph = m.styles.Success.Render(boxChecked)
		title = m.styles.Done.Render(item.Title)
	default:
		glyph = m.styles.Muted.Render(boxUnchecked)
		title = item.Title
	}
	prefix := "  "
	if i == m.cursor && m.mode == modeList {
		prefix = m.styles.Selected.Render("> ")
	}
	return fmt.Sprintf("%s%s %s", prefix, glyph, title)
}

func (m Model) renderNote(n view.Notification) string {
	switch n.Level {
	case view.LevelError:
		return m.styles.Error.Render("✖ " + n.Message)
	case view.LevelSuccess:
		return m.styles.Success.Render("✔ " + n.Message)
	default:
		return m.styles.Accent.Render("• " + n.Message)
	}
}

func (m Model) emptyText() string {
	if strings.TrimSpace(m.ctrl.Search()) != "" {
		return "No todos match your search."
	}
	switch m.ctrl.Filter() {
	case client.StatusActive:
		return "No active todos."
	case client.StatusCompleted:
		return "No completed todos."
	}
	return "No todos yet. Press a to add one."
}

func (m Model) inputLabel() string {
	switch m.mode {
	case modeAdd:
		return m.styles.Accent.Render("add:")
	case modeEdit:
		return m.styles.Accent.Render("edit:")
	default:
		return m.styles.Accent.Render("search:")
	}
}

func (m Model) helpText() string {
	help := "a add • e edit • space toggle • d delete • / search • f filter • ←/→ page • r refresh • q quit"
	if m.settings.DevMode {
		help += " • S seed • D clear"
	}
	return help
}

func (m *Model) saveSettings() {
	if m.settingsStore == nil {
		return
	}
	if err := m.settingsStore.Save(m.settings); err != nil {
		m.status = m.styles.Error.Render("✖ Failed to save settings")
	}
}

func (m Model) current() (client.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return client.Todo{}, false
	}
	return m.items[m.cursor], true
}

func nextFilter(filter string) string {
	switch filter {
	case client.StatusAll:
		return client.StatusActive
	case client.StatusActive:
		return client.StatusCompleted
	default:
		return client.StatusAll
	}
}

func cycle(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
