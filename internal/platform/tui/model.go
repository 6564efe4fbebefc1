package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/registry"
	"github.com/vovakirdan/mr-beerpong/internal/storage"
)

// Model is the Bubble Tea model that runs one game. It is used directly by
// the play command and embedded in menu and SSH sessions.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	logger     *log.Logger
	quitting   bool
	backToMenu bool
	exitOnBack bool // Standalone play has no menu to return to
	saved      bool // Whether the current session has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     logger.WithPrefix("tui"),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordSession()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu is only offered between throws: game over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.recordSession()
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.recordSession()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordSession stores the session summary once. Sessions that never
// reached a table are not recorded.
func (m *Model) recordSession() {
	if m.saved {
		return
	}
	m.saved = true

	rep, ok := m.game.(registry.Reporter)
	if !ok || m.store == nil {
		return
	}
	sum := rep.Summary()
	if sum.TableLabel == "" {
		return
	}
	if _, err := m.store.SaveSession(m.game.ID(), sum); err != nil {
		m.logger.Warn("could not save session", "err", err)
		return
	}
	m.logger.Info("session saved", "game", m.game.ID(), "score", sum.Score, "won", sum.Won)
}

// saveScreenshot saves the current screen to ~/.beerpong/screenshots as
// plain text and as a WebP image.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".beerpong", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(dir, fmt.Sprintf("%s_%s", m.game.ID(), timestamp))
	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	if err := saveScreenshotImage(base+".webp", m.screen); err != nil {
		m.logger.Warn("screenshot image failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", base)
}

// saveScreenshotImage writes the screen as a WebP file at path.
func saveScreenshotImage(path string, s *core.Screen) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteScreenshot(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
