package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/platform/tui"
	"github.com/vovakirdan/mr-beerpong/internal/registry"
	"github.com/vovakirdan/mr-beerpong/internal/storage"
)

var flagPickDifficulty bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (default: beerpong).

Point at a table or desk and pinch to place the rack, then throw.

Controls:
  A/D, Left/Right  - Sweep pointer / aim
  W/S, Up/Down     - Tilt pointer / throw power
  Enter            - Pinch (select the table)
  Space            - Throw
  P                - Pause
  R                - Restart (after game over)
  B/Esc            - Leave (when paused or over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Steady hand, tight rack
  normal - Some wobble that grows with hits
  hard   - Shaky throws, spread rack
  fixed  - No progression, stays at config's initial level

Examples:
  beerpong play
  beerpong play beerpong_quick
  beerpong play --difficulty hard
  beerpong play --pick-difficulty
  beerpong play --room ./living-room.yaml --config ./my-beerpong.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPickDifficulty, "pick-difficulty", false, "Choose the difficulty in a picker before playing")
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the sessions database, or returns nil with a warning so
// the game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := modeArg(args)
	if err != nil {
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := terminalConfig()

	if flagPickDifficulty {
		chosen, err := tui.RunDifficultySelector(cfg, preset)
		if err != nil {
			return err
		}
		// User pressed back or quit
		if chosen == nil {
			return nil
		}
		preset = *chosen
	}

	env, err := buildEnv(logger, preset)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID, env)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting", "mode", gameID, "room", env.Room.Name, "seed", cfg.Seed)
	return tui.Run(game, store, cfg, logger)
}
