// beerpong is a mixed-reality beer pong game played in the terminal against
// a scanned room description.
//
// Usage:
//
//	beerpong list             - List game modes
//	beerpong play [mode]      - Play a mode (default: beerpong)
//	beerpong menu             - Pick modes and difficulty interactively
//	beerpong simulate         - Let the computer throw and print the result
//	beerpong rooms            - Show the surfaces of the loaded room
//	beerpong scores [mode]    - Show stored sessions for a mode
//	beerpong serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible throws
//	--db <path>           - Set database path (default: ~/.beerpong/sessions.db)
//	--room <path>         - Room description YAML (default: embedded sample room)
//	--config <path>       - Game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	// Import modes to register them
	_ "github.com/vovakirdan/mr-beerpong/internal/beerpong"
	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/registry"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

const defaultMode = "beerpong"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagRoom       string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beerpong",
	Short: "Mixed-reality beer pong in your terminal",
	Long: `Beer Pong places a cup rack on a table from your scanned room and
lets you throw a ball at it until every cup is gone.

Available commands:
  list      - Show all game modes
  play      - Play a mode directly
  menu      - Interactive mode and difficulty picker
  simulate  - Headless auto-thrower, prints the session result
  rooms     - Report the surfaces of the room description
  scores    - View stored sessions
  serve     - Start SSH server for remote play

Examples:
  beerpong play
  beerpong play beerpong_quick --difficulty easy
  beerpong simulate --seed 42 --throws 30
  beerpong rooms --room ./my-room.yaml
  beerpong serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.beerpong/sessions.db", "Path to sessions database")
	pf.StringVar(&flagRoom, "room", "", "Path to room description YAML (default: embedded sample room)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. While a TUI owns the terminal, logs
// go to ~/.beerpong/beerpong.log instead of stderr. The returned func
// closes the log file, if any.
func newLogger(tui bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	cleanup := func() {}
	if tui {
		f, err := openLogFile()
		if err != nil {
			return nil, nil, err
		}
		w = f
		cleanup = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	log.SetDefault(logger)
	return logger, cleanup, nil
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".beerpong")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	path := filepath.Join(dir, "beerpong.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// buildEnv loads the room and game config named by the global flags and
// applies preset. An empty preset keeps the loaded config as is.
func buildEnv(logger *log.Logger, preset config.DifficultyPreset) (registry.Env, error) {
	r, err := room.Load(flagRoom)
	if err != nil {
		return registry.Env{}, err
	}

	cfg, err := config.LoadBeerPong(flagConfig)
	if err != nil {
		return registry.Env{}, err
	}
	config.ApplyBeerPongPreset(&cfg, preset)

	logger.Debug("environment ready", "room", r.Name, "surfaces", len(r.Surfaces()), "difficulty", preset)
	return registry.Env{Room: r, Config: cfg, Logger: logger, Audio: audio.NewLogPlayer(logger)}, nil
}

// modeArg returns the mode named in args, or the default mode.
func modeArg(args []string) (string, error) {
	id := defaultMode
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown mode %q, run 'beerpong list' to see available modes", id)
	}
	return id, nil
}
