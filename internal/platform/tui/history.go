package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/geirtris/internal/registry"
	"github.com/vovakirdan/geirtris/internal/storage"
)

const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 24  // Width of game list sidebar
	maxMatches         = 100 // Max matches to load
)

// HistoryOrder selects which matches the history screen lists.
type HistoryOrder int

const (
	OrderRecent HistoryOrder = iota
	OrderBest
)

func (o HistoryOrder) String() string {
	if o == OrderBest {
		return "best"
	}
	return "recent"
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Order    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Order, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Order, k.Back, k.Quit},
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
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "recent/best"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel lists finished matches per game.
type HistoryModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	order       HistoryOrder
	matches     []storage.MatchRecord
	stats       *storage.GameStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a history screen. If gameID is registered it is
// selected first.
func NewHistoryModel(store *storage.Store, gameID string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, g := range m.games {
		if g.ID == gameID {
			m.gameCursor = i
		}
	}

	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a table sized for the current layout.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Locked", Width: 7},
		{Title: "Ticks", Width: 7},
		{Title: "Reason", Width: 11},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 12},
	}

	height := m.height - 10 // Title, stats, help and borders
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

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

// currentGame returns the selected game id, or empty if none are registered.
func (m HistoryModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// reload fetches matches and stats for the selected game.
func (m *HistoryModel) reload() {
	m.matches, m.stats, m.loadErr = nil, nil, nil
	gameID := m.currentGame()
	if m.store == nil || gameID == "" {
		m.updateTableRows()
		return
	}

	if m.order == OrderBest {
		m.matches, m.loadErr = m.store.BestMatches(gameID, maxMatches)
	} else {
		m.matches, m.loadErr = m.store.RecentMatches(gameID, maxMatches)
	}
	if m.loadErr == nil {
		m.stats, m.loadErr = m.store.GetGameStats(gameID)
	}
	m.updateTableRows()
}

func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.matches))
	for i, rec := range m.matches {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", rec.Locked),
			fmt.Sprintf("%d", rec.Ticks),
			rec.EndReason,
			formatPlayed(rec.Duration),
			rec.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatPlayed renders a match duration as m:ss.
func formatPlayed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
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

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Order):
			if m.order == OrderRecent {
				m.order = OrderBest
			} else {
				m.order = OrderRecent
			}
			m.reload()
			return m, nil
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

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "MATCH HISTORY"
	if len(m.games) > 0 {
		title = fmt.Sprintf("MATCH HISTORY - %s (%s)", m.games[m.gameCursor].Title, m.order)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderTableBox())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes all matches of the selected game.
func (m HistoryModel) statsLine() string {
	if m.stats == nil || m.stats.Matches == 0 {
		return ""
	}
	return fmt.Sprintf("Matches: %d  Best: %d  Avg: %.1f  Played: %s",
		m.stats.Matches, m.stats.BestLocked, m.stats.AvgLocked,
		m.stats.TotalPlayed.Round(time.Second))
}

func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Games\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := g.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", m.renderTableBox())
}

func (m HistoryModel) renderTableBox() string {
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	return tableStyle.Render(m.renderTableContent())
}

// renderTableContent renders the table or a placeholder message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Match history is unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load matches:\n" + m.loadErr.Error())
	case len(m.matches) == 0:
		return emptyStyle.Render("No matches recorded yet.\nFinish a game to see it here!")
	}
	return m.table.View()
}

// Matches returns the rows currently listed.
func (m HistoryModel) Matches() []storage.MatchRecord {
	return m.matches
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// historyProgram ends the program when the player leaves the screen.
type historyProgram struct {
	HistoryModel
}

func (h historyProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := h.HistoryModel.Update(msg)
	if hm, ok := next.(HistoryModel); ok {
		h.HistoryModel = hm
	}
	if h.IsGoingBack() {
		return h, tea.Quit
	}
	return h, cmd
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		historyProgram{NewHistoryModel(store, gameID, width, height)},
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(historyProgram)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
