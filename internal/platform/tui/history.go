package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-slideshow/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the show list sidebar
	sidebarWidth       = 24  // Width of show list sidebar
	maxPlays           = 100 // Max plays to load
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextShow key.Binding
	PrevShow key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextShow, k.PrevShow, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextShow, k.PrevShow},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextShow: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next show"),
		),
		PrevShow: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev show"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the play history screen.
type HistoryModel struct {
	shows       []*storage.ShowStats
	showCursor  int
	store       *storage.Store
	plays       []storage.Play
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.loadShows()
	m.table = m.createTable()

	// Load plays for the most recent show
	if len(m.shows) > 0 {
		m.loadPlays(m.shows[0].ShowPath)
	}

	return m
}

// loadShows lists played shows, most recently played first.
func (m *HistoryModel) loadShows() {
	if m.store == nil {
		return
	}
	all, err := m.store.GetAllShowStats()
	if err != nil {
		return
	}
	for _, st := range all {
		m.shows = append(m.shows, st)
	}
	sort.Slice(m.shows, func(i, j int) bool {
		if m.shows[i].LastPlayed.Equal(m.shows[j].LastPlayed) {
			return m.shows[i].ShowPath < m.shows[j].ShowPath
		}
		return m.shows[i].LastPlayed.After(m.shows[j].LastPlayed)
	})
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Session", Width: 10},
		{Title: "Loop", Width: 10},
		{Title: "Done", Width: 5},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadPlays loads plays for the given show.
func (m *HistoryModel) loadPlays(showPath string) {
	if m.store == nil {
		m.plays = nil
		m.updateTableRows()
		return
	}

	plays, err := m.store.PlaysForShow(showPath, maxPlays)
	if err != nil {
		m.plays = nil
	} else {
		m.plays = plays
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current plays.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.plays))
	for i, p := range m.plays {
		done := "no"
		if p.Completed {
			done = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			p.Session,
			fmt.Sprintf("%s x%d", p.LoopType, p.Loops),
			done,
			FormatElapsed(p.Elapsed),
			p.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextShow):
			if len(m.shows) > 0 {
				m.showCursor = (m.showCursor + 1) % len(m.shows)
				m.loadPlays(m.shows[m.showCursor].ShowPath)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevShow):
			if len(m.shows) > 0 {
				m.showCursor--
				if m.showCursor < 0 {
					m.showCursor = len(m.shows) - 1
				}
				m.loadPlays(m.shows[m.showCursor].ShowPath)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "PLAY HISTORY"
	if st := m.current(); st != nil {
		title = fmt.Sprintf("PLAY HISTORY - %s (%d plays, %d completed)", filepath.Base(st.ShowPath), st.Plays, st.Completed)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) current() *storage.ShowStats {
	if len(m.shows) == 0 {
		return nil
	}
	return m.shows[m.showCursor]
}

// renderWideLayout renders the history with a sidebar for show selection.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Shows\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, st := range m.shows {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.showCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(filepath.Base(st.ShowPath), sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current show name above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if st := m.current(); st != nil {
		b.WriteString(centerText(fmt.Sprintf("< %s >", truncate(filepath.Base(st.ShowPath), m.width-8)), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.plays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No plays recorded yet.\nRun `slideshow play <path>` to start one!")
	}

	return m.table.View()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// RunHistory runs the history screen.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
