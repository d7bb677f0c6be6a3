package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Dir    string // project directory holding .casebook/
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the casebook CLI. Running it
// without a subcommand opens the board.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	open := NewOpenCommand(opts)

	cmd := &cobra.Command{
		Use:   "casebook",
		Short: "casebook - a terminal investigation board",
		Long: `Work a case from the terminal: browse the case file section by section,
keep notes as you go and file your theory once you know who did it.
Progress, notes and the filed theory survive restarts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			dir, err := resolveDir(opts.Dir)
			if err != nil {
				return err
			}
			opts.Dir = dir
			return nil
		},
		RunE: open.RunE,
	}
	cmd.Flags().AddFlagSet(open.Flags())

	cmd.PersistentFlags().StringVarP(&opts.Dir, "dir", "C", "", "project directory (default: current directory)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(open)
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func resolveDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}
