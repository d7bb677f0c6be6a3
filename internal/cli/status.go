package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/session"
)

// StatusResult is the JSON payload of the status command.
type StatusResult struct {
	Board    string           `json:"board"`
	Backend  string           `json:"backend"`
	Degraded bool             `json:"degraded"`
	Session  session.Snapshot `json:"session"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show saved progress, notes and theory",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			p, err := openProject(rootOpts.Dir)
			if err != nil {
				return formatter.Failure(err)
			}
			defer p.Close()

			snap := session.Inspect(p.store, p.cfg.Keys(), board.NewSurface(p.doc))
			result := StatusResult{
				Board:    p.doc.Title,
				Backend:  p.cfg.Project.Store.Backend,
				Degraded: p.store.Degraded(),
				Session:  snap,
			}
			return formatter.Success(formatStatus(result), result)
		},
	}
}

func formatStatus(r StatusResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Board)
	store := r.Backend
	if r.Degraded {
		store += " (unavailable)"
	}
	fmt.Fprintf(&b, "  store:    %s\n", store)
	p := r.Session.Progress
	fmt.Fprintf(&b, "  progress: %d/%d cards (%d%%)\n", p.Viewed, p.Total, p.Percent())
	fmt.Fprintf(&b, "  notes:    %d chars\n", len([]rune(r.Session.Notes)))
	if t := r.Session.Theory; t != nil {
		fmt.Fprintf(&b, "  theory:   %s, filed %s (ref %s)", t.Suspect, t.SubmittedAt.Local().Format("2006-01-02 15:04"), t.Ref)
	} else {
		fmt.Fprintf(&b, "  theory:   not filed")
	}
	return b.String()
}
