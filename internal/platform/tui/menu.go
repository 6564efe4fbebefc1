package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/registry"
	"github.com/vovakirdan/mr-beerpong/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem is one playable mode and how the player has done in it so far.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // Zero when never played
	Played int
}

func (it MenuItem) label() string {
	if it.Played == 0 {
		return it.Title + "  · new"
	}
	return fmt.Sprintf("%s  · best %d · %d played", it.Title, it.Best, it.Played)
}

// menuItems lists the registered modes with their stored stats. A missing
// store or a failed query leaves the stats empty.
func menuItems(store *storage.Store) []MenuItem {
	var stats map[string]*storage.GameStats
	if store != nil {
		stats, _ = store.GetAllGamesStats()
	}
	var items []MenuItem
	for _, g := range registry.List() {
		it := MenuItem{GameID: g.ID, Title: g.Title}
		if st, ok := stats[g.ID]; ok {
			it.Best, it.Played = st.BestScore, st.Sessions
		}
		items = append(items, it)
	}
	return items
}

// MenuModel picks a game mode or opens the session history.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	keys   *KeyMapper

	picked      *MenuItem
	wantHistory bool
	quitting    bool
	exitOnDone  bool
}

func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{items: menuItems(store), config: cfg, keys: NewKeyMapper()}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
		case MenuActionSelect:
			if len(m.items) == 0 {
				break
			}
			it := m.items[m.cursor]
			m.picked = &it
			return m, m.finish()
		case MenuActionScoreboard:
			m.wantHistory = true
			return m, m.finish()
		}
	}
	return m, nil
}

// finish ends the program only when the menu runs on its own.
func (m MenuModel) finish() tea.Cmd {
	if m.exitOnDone {
		return tea.Quit
	}
	return nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	lines := []string{
		"",
		menuTitleStyle.Render(centerText("B E E R   P O N G", w)),
		"",
		menuHintStyle.Render(centerText("Pick a table in your room and clear the rack", w)),
		"",
	}
	for i, it := range m.items {
		if i == m.cursor {
			lines = append(lines, menuSelectedStyle.Render(centerText("▸ "+it.label(), w)))
		} else {
			lines = append(lines, centerText("  "+it.label(), w))
		}
	}
	if len(m.items) == 0 {
		lines = append(lines, menuHintStyle.Render(centerText("no modes registered", w)))
	}
	lines = append(lines, "",
		menuHintStyle.Render(centerText("↑/↓ move · enter play · tab history · q quit", w)), "")
	return strings.Join(lines, "\n")
}

// Selected returns the chosen mode, or nil.
func (m MenuModel) Selected() *MenuItem { return m.picked }

func (m MenuModel) IsQuitting() bool { return m.quitting }

// WantsScoreboard reports whether the player opened the session history.
func (m MenuModel) WantsScoreboard() bool { return m.wantHistory }

// Config returns the runtime config including any resize seen by the menu.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerText pads text on the left to center it within width cells.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult is what a standalone menu run decided.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu as its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)
	model.exitOnDone = true

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
