// Package cmd implements the climux command-line entrypoint: a single
// interactive TUI command, wired through fang for help/version/
// signal handling the way the teacher's root command is.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/climux/climux/internal/apperrors"
	"github.com/climux/climux/internal/config"
	"github.com/climux/climux/internal/engine"
	"github.com/climux/climux/internal/logging"
	"github.com/climux/climux/internal/notify"
	ptyport "github.com/climux/climux/internal/pty"
	"github.com/climux/climux/internal/tui"
)

const version = "0.1.0"

func init() {
	rootCmd.Flags().BoolP("debug", "d", false, "Debug logging")
}

var rootCmd = &cobra.Command{
	Use:   "climux",
	Short: "A terminal multiplexer",
	Long:  "climux is a terminal multiplexer: multiple shell sessions under one tmux-style prefix key, with a scrollback viewer, search, and desktop notifications.",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		err := apperrors.New(apperrors.TuiBackend, "stdout is not a terminal", apperrors.Options{})
		return err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	cfg := config.Load(debug)

	closer, err := logging.Init(cfg)
	if err == nil {
		defer closer.Close()
	}

	cwd, _ := os.Getwd()
	rows, cols := 24, 80
	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 && h > 0 {
		cols, rows = w, h
	}

	mgr := ptyport.NewManager()
	notifier := notify.NewDesktop()
	eng := engine.New(mgr, cfg.Shell, cwd, ptyport.Size{Rows: uint16(rows), Cols: uint16(cols)}, cfg.ScrollbackLimit, notifier)
	model := tui.New(eng)

	var env uv.Environ = os.Environ()
	program := tea.NewProgram(
		model,
		tea.WithEnvironment(env),
		tea.WithContext(cmd.Context()),
	)

	if _, err := program.Run(); err != nil {
		slog.Error("tui run error", "error", err)
		return fmt.Errorf("climux crashed: %w", err)
	}
	return nil
}

// Execute runs the root command through fang, which provides styled
// help/usage, version output, and signal-triggered shutdown.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
