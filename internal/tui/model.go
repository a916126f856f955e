// Package tui is the terminal browser: the same file list and navigation
// vocabulary as the window viewer, with a metadata pane instead of pixels.
package tui

import (
	"fmt"
	"strings"

	"imgbrowse/internal/analysis"
	"imgbrowse/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the keybindings for the terminal browser.
type KeyMap struct {
	Next key.Binding
	Prev key.Binding
	Top  key.Binding
	End  key.Binding
	Help key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Top, k.End},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap mirrors the window viewer: n/space forward, p back, q quit.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("n", " ", "down", "j", "right"),
			key.WithHelp("n/space", "next image"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "up", "k", "left"),
			key.WithHelp("p", "previous image"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first image"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last image"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// detailMsg delivers a probe result for one list index.
type detailMsg struct {
	index int
	info  *types.ImageInfo
	err   error
}

// Prober resolves metadata for a path; swapped out in tests.
type Prober func(path string) (*types.ImageInfo, error)

// Model is the bubbletea model for the terminal browser.
type Model struct {
	files   []string
	cursor  int
	details map[int]*detailMsg
	probe   Prober

	keys   KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a terminal browser over files.
func New(files []string) *Model {
	return &Model{
		files:   files,
		details: make(map[int]*detailMsg),
		probe:   analysis.Probe,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Cursor returns the current list position; used by tests.
func (m *Model) Cursor() int {
	return m.cursor
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.probeCmd(m.cursor)
}

// probeCmd loads details for index i unless they are already cached.
func (m *Model) probeCmd(i int) tea.Cmd {
	if i < 0 || i >= len(m.files) {
		return nil
	}
	if _, ok := m.details[i]; ok {
		return nil
	}
	path := m.files[i]
	probe := m.probe
	return func() tea.Msg {
		info, err := probe(path)
		return detailMsg{index: i, info: info, err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case detailMsg:
		d := msg
		m.details[msg.index] = &d
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Prev):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.files) - 1
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, m.probeCmd(m.cursor)
}

// View implements tea.Model
func (m *Model) View() string {
	if len(m.files) == 0 {
		return ErrorStyle.Render("No images to browse.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("imgbrowse - %d files", len(m.files))))
	b.WriteString("\n\n")

	for i, row := range m.visibleRows() {
		line := fmt.Sprintf("%5d. %s", row, m.files[row])
		if row == m.cursor {
			line = SelectedStyle.Render(line)
		} else {
			line = ItemStyle.Render(line)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}

	b.WriteString("\n\n")
	b.WriteString(DetailStyle.Render(m.detailView()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// visibleRows returns the indices of the list rows that fit on screen,
// keeping the cursor in view.
func (m *Model) visibleRows() []int {
	max := m.height - 12 // title, padding, detail pane, help line
	if max < 5 {
		max = 5
	}
	if len(m.files) <= max {
		rows := make([]int, len(m.files))
		for i := range rows {
			rows[i] = i
		}
		return rows
	}

	start := m.cursor - max/2
	if start < 0 {
		start = 0
	}
	if start+max > len(m.files) {
		start = len(m.files) - max
	}
	rows := make([]int, max)
	for i := range rows {
		rows[i] = start + i
	}
	return rows
}

func (m *Model) detailView() string {
	d, ok := m.details[m.cursor]
	if !ok {
		return StatusStyle.Render("probing...")
	}
	if d.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("not an image: %v", d.err))
	}

	info := d.info
	lines := []string{
		fmt.Sprintf("Format: %s", info.Format),
		fmt.Sprintf("Resolution: %s", info.Resolution()),
		fmt.Sprintf("Size: %d bytes", info.Size),
	}
	if info.Taken != "" {
		lines = append(lines, fmt.Sprintf("Taken: %s", info.Taken))
	}
	if info.Camera != "" {
		lines = append(lines, fmt.Sprintf("Camera: %s", info.Camera))
	}
	return strings.Join(lines, "\n")
}
