package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/scheduler"
	"github.com/kingrea/casebook/internal/session"
)

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	Yes bool
}

// confirmReset asks before wiping a session. Replaced in tests.
var confirmReset = func() (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title("Forget all progress, notes and the filed theory?").
		Affirmative("Reset").
		Negative("Keep").
		Value(&ok).
		Run()
	return ok, err
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{}
	cmd := &cobra.Command{
		Use:           "reset",
		Short:         "Forget saved progress, notes and theory",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if !opts.Yes {
				if !isTerminal() {
					return formatter.Failure(NewExitError(ExitCommandError, "refusing to reset without --yes outside a terminal"))
				}
				ok, err := confirmReset()
				if err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return formatter.Success("reset cancelled", map[string]bool{"reset": false})
					}
					return formatter.Failure(WrapExitError(ExitFailure, "confirm", err))
				}
				if !ok {
					return formatter.Success("reset cancelled", map[string]bool{"reset": false})
				}
			}

			p, err := openProject(rootOpts.Dir)
			if err != nil {
				return formatter.Failure(err)
			}
			defer p.Close()
			if p.store.Degraded() {
				p.logger.Error("reset refused", "reason", "store unavailable")
				return formatter.Failure(NewExitError(ExitFailure, "store unavailable (is casebook open?)"))
			}

			mgr := session.New(session.Config{
				Store:     p.store,
				Surface:   board.NewSurface(p.doc),
				Scheduler: scheduler.New(nil),
				Keys:      p.cfg.Keys(),
				Reload:    func() {},
			})
			mgr.ResetAll()
			if p.store.Degraded() {
				p.logger.Error("reset incomplete", "reason", "store failed during reset")
				return formatter.Failure(NewExitError(ExitFailure, "reset did not reach the store"))
			}
			p.logger.Warn("session reset from CLI")
			return formatter.Success("investigation reset", map[string]any{
				"reset": true,
				"keys":  mgr.Keys().All(),
			})
		},
	}
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
