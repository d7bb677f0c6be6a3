package cli

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/config"
	"github.com/kingrea/casebook/internal/logging"
	"github.com/kingrea/casebook/internal/tui"
)

// OpenOptions holds flags for the open command.
type OpenOptions struct {
	Board string
	Watch bool
}

// isTerminal reports whether the TUI can take over the terminal.
var isTerminal = func() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

// NewOpenCommand creates the open command.
func NewOpenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OpenOptions{}
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open the investigation board",
		Long: `Open the investigation board in the terminal.

The board file defaults to the one named in .casebook/config.yaml; the
bundled sample case is used when that file does not exist. A board given
with --board is saved to the config and reopened next time. With --watch the
board reloads whenever the file changes on disk.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd.Context(), rootOpts, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Board, "board", "b", "", "board file to open; remembered in config for later runs")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "reload the board when the file changes")
	return cmd
}

func runOpen(ctx context.Context, rootOpts *RootOptions, opts *OpenOptions) error {
	if !isTerminal() {
		return NewExitError(ExitCommandError, "open needs an interactive terminal; use `casebook status` for scripted access")
	}
	if err := config.InitDir(rootOpts.Dir); err != nil {
		return WrapExitError(ExitCommandError, "initialize .casebook directory", err)
	}
	logger, err := logging.New(rootOpts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "open log", err)
	}
	defer logger.Close()

	appOpts := []tui.AppOption{tui.WithLogger(logger)}
	boardPath := opts.Board
	if boardPath != "" {
		doc, err := board.Load(boardPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "load board", err)
		}
		appOpts = append(appOpts, tui.WithDocument(doc))
		if cfg, err := config.NewConfig(rootOpts.Dir); err == nil {
			remembered := boardPath
			if abs, err := filepath.Abs(boardPath); err == nil {
				remembered = abs
			}
			if err := cfg.SetBoard(remembered); err != nil {
				logger.Warn("could not remember board", "path", boardPath, "err", err)
			}
		}
		logger.Printf("opening board %s", boardPath)
	}
	app, err := tui.NewApp(rootOpts.Dir, appOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "start", err)
	}
	defer app.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Watch {
		if boardPath == "" {
			cfg, err := config.NewConfig(rootOpts.Dir)
			if err == nil {
				boardPath = cfg.BoardPath()
			}
		}
		go func() {
			if err := tui.WatchBoard(ctx, boardPath, p.Send); err != nil {
				logger.Warn("board watch stopped", "path", boardPath, "err", err)
			}
		}()
	}
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("tui exited", "err", err)
		return WrapExitError(ExitFailure, "run TUI", err)
	}
	return nil
}
