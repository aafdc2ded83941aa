package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	maxLogLines = 100
)

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for a panel's title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	// infoStyle defines the style for a panel's text.
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// selectedStyle defines the style of the highlighted entry.
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	// folderStyle defines the style of folder entries.
	folderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	// helpStyle defines the style for the help panel's text.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
	Abort key.Binding
}

//nolint:gochecknoglobals
var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter: key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "open")),
	Back:  key.NewBinding(key.WithKeys("backspace", "left", "h"), key.WithHelp("backspace", "back")),
	Quit:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Abort: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit program")),
}

func (k keyMap) help() string {
	bindings := []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Quit, k.Abort}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, b.Help().Key+": "+b.Help().Desc)
	}

	return strings.Join(parts, " • ")
}

// TeaModel is the principal [tea.Model] for the namespace browser.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	uiHandler *Handler

	fullWidthWithBorders int

	entries  []Entry
	selected int
	status   string

	logsViewport viewport.Model
	logs         []string

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
//
//nolint:mnd
func NewTeaModel(uiHandler *Handler, cancel context.CancelFunc) TeaModel {
	m := TeaModel{
		uiHandler:    uiHandler,
		logsViewport: viewport.New(80, 10),
		logs:         make([]string, 0, maxLogLines),
		cancel:       cancel,
	}
	m.reload()

	return m
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	m.uiHandler.Initialized.Store(true)

	return tea.EnterAltScreen
}

func (m *TeaModel) reload() {
	entries, err := m.uiHandler.browser.Entries()
	if err != nil {
		m.status = "Failed to list: " + err.Error()
		entries = nil
	} else {
		m.status = fmt.Sprintf("%d entries", len(entries))
	}

	m.entries = entries
	m.selected = 0
}

func (m *TeaModel) refreshLogs() {
	logs := lipgloss.NewStyle().
		Width(m.logsViewport.Width).
		Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

	m.logsViewport.SetContent(logs)
	m.logsViewport.GotoBottom()
}

// Update is the principal message handling method of the model.
//
//nolint:mnd,ireturn
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Abort):
			m.cancel()

			return m, tea.Quit
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, keys.Down):
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
		case key.Matches(msg, keys.Enter):
			if m.selected < len(m.entries) && m.entries[m.selected].Folder {
				if err := m.uiHandler.browser.Enter(m.selected); err != nil {
					m.status = "Failed to open: " + err.Error()

					break
				}
				m.reload()
			}
		case key.Matches(msg, keys.Back):
			if m.uiHandler.browser.Up() {
				m.reload()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fullWidthWithBorders = m.width - 2

		m.logsViewport.Width = m.fullWidthWithBorders
		m.logsViewport.Height = max(m.height/4, 3)

		if len(m.logs) > 0 {
			m.refreshLogs()
		}

		m.ready = true

	case LogMsg:
		if len(m.logs) >= maxLogLines {
			m.logs = m.logs[1:]
		}
		m.logs = append(m.logs, string(msg))

		m.refreshLogs()
	}

	m.logsViewport, cmd = m.logsViewport.Update(msg)

	return m, cmd
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	header := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.fullWidthWithBorders).Render(m.uiHandler.browser.Location()),
		infoStyle.Width(m.fullWidthWithBorders).Render("Targets: "+strings.Join(m.uiHandler.browser.Targets(), ", ")),
		infoStyle.Width(m.fullWidthWithBorders).Render(m.status),
	)

	listSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.formatEntries()))

	logsSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.fullWidthWithBorders).Render("Logs"),
				lipgloss.NewStyle().Width(m.fullWidthWithBorders).Render(m.logsViewport.View()),
			),
		)

	helpSection := helpStyle.
		Width(m.fullWidthWithBorders).
		Render(keys.help())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		listSection,
		logsSection,
		helpSection,
	)
}

// formatEntries renders the window of entries around the selection that
// fits the list panel.
//
//nolint:mnd
func (m TeaModel) formatEntries() string {
	if len(m.entries) == 0 {
		return infoStyle.Render("(empty)")
	}

	rows := max(m.height-m.logsViewport.Height-12, 5)
	start := max(min(m.selected-rows/2, len(m.entries)-rows), 0)
	end := min(start+rows, len(m.entries))

	var s strings.Builder
	for i := start; i < end; i++ {
		s.WriteString(m.formatEntry(i))
		if i < end-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m TeaModel) formatEntry(i int) string {
	entry := m.entries[i]

	size := humanize.Bytes(uint64(max(entry.Size, 0)))
	name := entry.Name
	if entry.Folder {
		size = "-"
		name = folderStyle.Render(name + "/")
	}

	modified := "-"
	if !entry.Modified.IsZero() {
		modified = humanize.Time(entry.Modified)
	}

	line := fmt.Sprintf("%-40s %10s  %-16s @%d", name, size, modified, entry.Delegate)

	if i == m.selected {
		return selectedStyle.Render("> " + line)
	}

	return "  " + line
}
