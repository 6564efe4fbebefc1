package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/registry"
	"github.com/vovakirdan/mr-beerpong/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.beerpong/host_key.
	HostKeyPath string

	// DBPath is the path to the sessions database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Env is handed to every game created for a connection. Each session
	// gets its own copy with the chosen difficulty applied.
	Env registry.Env

	// Preset is preselected in the difficulty picker.
	Preset config.DifficultyPreset

	// TickRate is the simulation rate for remote sessions.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.beerpong/sessions.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server that serves beer pong sessions.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Env.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	}
	logger = logger.WithPrefix("ssh")
	if cfg.Env.Room == nil {
		return nil, errors.New("ssh: no room loaded")
	}

	hostKeyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	env := s.config.Env
	env.Logger = s.logger.With("user", sshSession.User())

	// Create session model that handles menu + game flow
	model := NewSessionModel(s.store, cfg, env, s.config.Preset)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server stopped", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}
	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("could not close sessions database", "error", err)
		}
	}

	return s.server.Shutdown(ctx)
}

// resolveHostKey returns the host key location, defaulting to
// ~/.beerpong/host_key, and makes sure its directory exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: no home directory for host key: %w", err)
		}
		path = filepath.Join(home, ".beerpong", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: host key directory: %w", err)
	}
	return path, nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel currently shows.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScoreboard
	screenDifficulty
	screenGame
)

// SessionModel manages the full session flow:
// menu -> difficulty -> game -> menu, with the session history reachable
// from the menu. This is the top-level model used for SSH sessions and the
// local menu command.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	env        registry.Env
	screen     sessionScreen
	gameID     string
	preset     config.DifficultyPreset
	menu       MenuModel
	scoreboard ScoreboardModel
	difficulty DifficultyModel
	game       *Model
	quitting   bool
}

// NewSessionModel creates a new session model. The difficulty picker starts
// on preset; env.Config must not have a preset applied yet.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, env registry.Env, preset config.DifficultyPreset) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		env:    env,
		preset: preset,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenScoreboard:
		return m.updateScoreboard(msg)
	case screenDifficulty:
		return m.updateDifficulty(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		m.gameID = m.menu.Selected().GameID
		m.config = m.menu.Config() // Get possibly updated config from resize
		m.difficulty = NewDifficultyModel(m.config.ScreenW, m.config.ScreenH, m.preset)
		m.screen = screenDifficulty
		return m, m.difficulty.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates while the session history is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}

	return m, cmd
}

// updateDifficulty handles updates while the difficulty picker is shown.
func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.difficulty.Update(msg)
	if picker, ok := newPicker.(DifficultyModel); ok {
		m.difficulty = picker
	}

	switch {
	case m.difficulty.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.difficulty.WantsBack():
		return m.backToMenu()
	case m.difficulty.Selected() != nil:
		m.preset = *m.difficulty.Selected()
		return m.startGame()
	}

	return m, cmd
}

// startGame creates the chosen game with the chosen preset applied.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	env := m.env
	config.ApplyBeerPongPreset(&env.Config, m.preset)

	game, err := registry.Create(m.gameID, env)
	if err != nil {
		// Shouldn't happen since menu only shows registered games
		if env.Logger != nil {
			env.Logger.Error("cannot create game", "game", m.gameID, "error", err)
		}
		return m.backToMenu()
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	model := NewModel(game, m.store, cfg, env.Logger)
	m.game = &model
	m.screen = screenGame

	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	// Check if user quit entirely
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if user left the game (back to menu)
	if m.game.BackToMenu() {
		m.game = nil
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so best scores are fresh.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenScoreboard:
		return m.scoreboard.View()
	case screenDifficulty:
		return m.difficulty.View()
	case screenGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}
