package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/platform/tui"
	"github.com/vovakirdan/mr-beerpong/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and difficulty picker",
	Long: `Start in interactive menu mode.

Pick a mode, then a difficulty. After a game ends, leave with B/Esc to
return to the menu and play again. Tab opens the session history.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Session history
  Q            - Quit

Examples:
  beerpong menu
  beerpong menu --fps 30
  beerpong menu --db ./sessions.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	// Validate room and config once before showing any screen
	if _, err := buildEnv(logger, ""); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		chosen, err := tui.RunDifficultySelector(cfg, preset)
		if err != nil {
			return err
		}
		// Back to menu
		if chosen == nil {
			continue
		}
		preset = *chosen

		env, err := buildEnv(logger, preset)
		if err != nil {
			return err
		}
		game, err := registry.Create(menuResult.GameID, env)
		if err != nil {
			logger.Error("cannot create game", "mode", menuResult.GameID, "err", err)
			continue
		}

		// Fresh seed for each game unless pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg, logger); err != nil {
			return err
		}
	}
}
