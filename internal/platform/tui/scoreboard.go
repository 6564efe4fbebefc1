package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mr-beerpong/internal/registry"
	"github.com/vovakirdan/mr-beerpong/internal/storage"
)

const (
	historyLimit     = 100 // Sessions loaded per mode
	statsPanelWidth  = 24
	minWidthForStats = 84 // Below this the stats collapse into one line
)

var (
	historyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	historyDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	historyBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
	historyTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
)

// ScoreboardKeyMap holds the history screen bindings.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Mode  key.Binding
	Order key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Mode, k.Order, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the default history bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Mode:  key.NewBinding(key.WithKeys("tab", "right", "l", "shift+tab", "left", "h"), key.WithHelp("tab", "mode")),
		Order: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "best/recent")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists recorded sessions per game mode, ordered by score or
// by date, next to the aggregated stats of that mode.
type ScoreboardModel struct {
	modes    []registry.GameInfo
	mode     int
	store    *storage.Store
	sessions []storage.SessionRecord
	stats    *storage.GameStats
	recent   bool
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int

	quitting   bool
	goingBack  bool
	exitOnDone bool
}

// NewScoreboardModel builds the history screen and loads the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForStats
}

func (m ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Score", Width: 6},
		{Title: "Hits", Width: 5},
		{Title: "Miss", Width: 5},
		{Title: "Result", Width: 6},
		{Title: "Table", Width: 8},
		{Title: "When", Width: 12},
	}
	avail := m.width - 6
	if m.wide() {
		avail -= statsPanelWidth + 4
	}
	for _, c := range cols {
		avail -= c.Width + 2
	}
	if avail > 0 {
		cols[5].Width += min(avail, 12)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	return table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
		table.WithStyles(styles),
	)
}

// reload fetches sessions and stats of the current mode.
func (m *ScoreboardModel) reload() {
	m.sessions, m.stats = nil, nil
	id := m.currentID()
	if m.store != nil && id != "" {
		load := m.store.TopSessions
		if m.recent {
			load = m.store.RecentSessions
		}
		if rows, err := load(id, historyLimit); err == nil {
			m.sessions = rows
		}
		if st, err := m.store.GetGameStats(id); err == nil {
			m.stats = st
		}
	}

	rows := make([]table.Row, 0, len(m.sessions))
	for i, s := range m.sessions {
		result := "-"
		if s.Won {
			result = "clear"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Hits),
			strconv.Itoa(s.Misses),
			result,
			strings.ToLower(s.TableLabel),
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) currentID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation, mode cycling and the order toggle.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.exitOnDone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Mode):
			if n := len(m.modes); n > 1 {
				step := 1
				switch msg.String() {
				case "shift+tab", "left", "h":
					step = n - 1
				}
				m.mode = (m.mode + step) % n
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.recent = !m.recent
			m.reload()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the title, the mode tabs, the sessions and the stats.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "BEST SESSIONS"
	if m.recent {
		title = "RECENT SESSIONS"
	}

	var b strings.Builder
	b.WriteString(historyTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	if tabs := m.modeTabs(); tabs != "" {
		b.WriteString(centerText(tabs, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	body := historyBoxStyle.Render(m.sessionsView())
	if m.wide() {
		panel := historyBoxStyle.Width(statsPanelWidth).Render(m.statsPanel())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panel)
	} else if line := m.statsLine(); line != "" {
		body += "\n" + historyDimStyle.Render(line)
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(historyDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) modeTabs() string {
	if len(m.modes) < 2 {
		if len(m.modes) == 1 {
			return historyDimStyle.Render(m.modes[0].Title)
		}
		return ""
	}
	parts := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			parts[i] = historyTabStyle.Render(g.Title)
		} else {
			parts[i] = historyDimStyle.Render(" " + g.Title + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m ScoreboardModel) sessionsView() string {
	if len(m.sessions) == 0 {
		return historyDimStyle.Italic(true).Padding(1, 3).
			Render("No sessions recorded yet.\nPick a table and start throwing!")
	}
	return m.table.View()
}

func accuracy(st *storage.GameStats) float64 {
	throws := st.TotalHits + st.TotalMisses
	if throws == 0 {
		return 0
	}
	return float64(st.TotalHits) / float64(throws)
}

func (m ScoreboardModel) statsPanel() string {
	st := m.stats
	if st == nil || st.Sessions == 0 {
		return historyDimStyle.Render("no stats yet")
	}
	rows := [][2]string{
		{"Sessions", strconv.Itoa(st.Sessions)},
		{"Cleared", fmt.Sprintf("%d (%.0f%%)", st.Wins, st.WinRate()*100)},
		{"Best", strconv.Itoa(st.BestScore)},
		{"Average", fmt.Sprintf("%.0f", st.AvgScore)},
		{"Accuracy", fmt.Sprintf("%.0f%%", accuracy(st)*100)},
	}
	if !st.LastPlayed.IsZero() {
		rows = append(rows, [2]string{"Last", st.LastPlayed.Format("Jan 02")})
	}
	var b strings.Builder
	b.WriteString(historyTitleStyle.Render("Stats"))
	for _, r := range rows {
		fmt.Fprintf(&b, "\n%-9s %s", r[0], r[1])
	}
	return b.String()
}

// statsLine is the single-line stats summary for narrow terminals.
func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st == nil || st.Sessions == 0 {
		return ""
	}
	return fmt.Sprintf("%d sessions · %d cleared · best %d · avg %.0f · %.0f%% accuracy",
		st.Sessions, st.Wins, st.BestScore, st.AvgScore, accuracy(st)*100)
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the history as its own program. It reports whether
// the player went back rather than quit.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	model := NewScoreboardModel(store, width, height)
	model.exitOnDone = true

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
