// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

// Game is the interface the platform drives. Games contain pure logic with
// no Bubble Tea dependency; the platform handles input mapping, timing and
// rendering.
type Game interface {
	// ID returns a unique identifier for this game mode (e.g., "beerpong").
	// Used for CLI commands and session storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Reporter is implemented by games that can summarize a finished session
// for storage.
type Reporter interface {
	Summary() core.SessionSummary
}

// Env carries the shared collaborators handed to every factory.
type Env struct {
	Room   *room.Room
	Config config.BeerPongConfig
	Logger *log.Logger
	Audio  audio.Player // Optional extra sink; nil means none
}

// DefaultEnv returns an environment with the embedded room, the default
// configuration and the default logger.
func DefaultEnv() (Env, error) {
	r, err := room.Load("")
	if err != nil {
		return Env{}, err
	}
	return Env{
		Room:   r,
		Config: config.DefaultBeerPongConfig(),
		Logger: log.Default(),
	}, nil
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func(env Env) Game

type entry struct {
	title   string
	factory Factory
}

var (
	games = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := games[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	games[id] = entry{title: title, factory: f}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(games))
	for id, e := range games {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	e, ok := games[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(env), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := games[id]
	return ok
}
