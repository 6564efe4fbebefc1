package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// difficultyOption is one row of the difficulty picker.
type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
	hint   string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Easy", "steady hand, tight rack"},
	{config.DifficultyNormal, "Normal", "some wobble, grows with hits"},
	{config.DifficultyHard, "Hard", "shaky throws, spread rack"},
	{config.DifficultyFixed, "Fixed", "no progression"},
}

// DifficultyModel lets users choose a difficulty preset before a game.
type DifficultyModel struct {
	cursor     int
	width      int
	height     int
	keyMapper  *KeyMapper
	selection  config.DifficultyPreset
	choosing   bool
	quitting   bool
	back       bool
	exitOnDone bool // Quit the program on select or back when run standalone
}

// NewDifficultyModel creates a picker with the cursor on initial, or on
// Normal when initial is empty.
func NewDifficultyModel(width, height int, initial config.DifficultyPreset) DifficultyModel {
	m := DifficultyModel{
		cursor:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	for i, o := range difficultyOptions {
		if o.preset == initial {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = difficultyOptions[m.cursor].preset
		return m, m.done()
	case MenuActionBack:
		m.back = true
		return m, m.done()
	}

	return m, nil
}

func (m DifficultyModel) done() tea.Cmd {
	if m.exitOnDone {
		return tea.Quit
	}
	return nil
}

// View renders the picker.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B E E R   P O N G", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, o := range difficultyOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-7s %s", cursor, o.label, o.hint), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or nil while still choosing.
func (m DifficultyModel) Selected() *config.DifficultyPreset {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m DifficultyModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the picker and returns the chosen preset, or
// nil when the user backed out or quit.
func RunDifficultySelector(cfg core.RuntimeConfig, initial config.DifficultyPreset) (*config.DifficultyPreset, error) {
	model := NewDifficultyModel(cfg.ScreenW, cfg.ScreenH, initial)
	model.exitOnDone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
