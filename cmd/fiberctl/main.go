// Command fiberctl renders scene files through the fiber scheduler and
// serves the inspector.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/fiber/internal/config"
	"github.com/vango-dev/fiber/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
}

func main() {
	if !isTerminal(os.Stderr) {
		errors.DisableColors()
	}
	if err := rootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "fiberctl",
		Short: "Render and inspect fiber view trees",
		Long: `fiberctl drives the fiber scheduler against an in-memory host tree.

Scene files describe a view tree in YAML using host tags and the
built-in components (counter, todo). Render a scene once, optionally
dispatching events, or serve it with the inspector.

Examples:
  fiberctl render scenes/counter.yaml
  fiberctl render scenes/counter.yaml --event inc:click --event inc:click
  fiberctl serve scenes/todo.yaml --addr :7070`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to fiber.json (default: nearest fiber.json)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Log every unit of work")

	cmd.AddCommand(
		renderCmd(flags),
		serveCmd(flags),
		versionCmd(),
	)
	return cmd
}

// loadConfig reads the configuration named by --config, or the nearest
// fiber.json. Without either the defaults are used.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	cfg, err := config.LoadFromWorkingDir()
	if errors.HasCode(err, "E131") {
		return config.New(), nil
	}
	return cfg, err
}

func (g *globalFlags) logger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if g.debug || cfg.Scheduler.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (g *globalFlags) debugEnabled(cfg *config.Config) bool {
	return g.debug || cfg.Scheduler.Debug
}
