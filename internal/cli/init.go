package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/config"
)

// InitResult is the JSON payload of the init command.
type InitResult struct {
	Config string `json:"config"`
	Board  string `json:"board"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create .casebook/ with a default config and the sample board",
		Long: `Create the .casebook directory with a commented config.yaml and a copy of
the sample case as board.yaml. Existing files are left untouched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if err := config.InitDir(rootOpts.Dir); err != nil {
				return formatter.Failure(WrapExitError(ExitCommandError, "initialize .casebook", err))
			}
			cfg, err := config.NewConfig(rootOpts.Dir)
			if err != nil {
				return formatter.Failure(WrapExitError(ExitCommandError, "load config", err))
			}
			if err := board.WriteSample(cfg.BoardPath()); err != nil {
				return formatter.Failure(WrapExitError(ExitFailure, "write sample board", err))
			}
			result := InitResult{Config: cfg.ProjectConfigPath(), Board: cfg.BoardPath()}
			return formatter.Success(fmt.Sprintf("config: %s\nboard:  %s", result.Config, result.Board), result)
		},
	}
}
