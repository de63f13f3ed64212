package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jbeshir/badge-desk/internal/command"
	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/datasources/spreadsheet"
	"github.com/jbeshir/badge-desk/internal/domain"
	"github.com/spf13/cobra"
)

const defaultRosterFile = "BADGES.xlsx"

// options are the persistent flags shared by every subcommand.
type options struct {
	file    string
	now     string
	policy  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "badgectl",
		Short: "Query a badge roster from the terminal",
		Long: `badgectl loads a badge roster spreadsheet (.xlsx or .csv) and answers
questions about it: searching holders, showing one badge, asking the
assistant and printing roster statistics.

Examples:
  badgectl search dupont            # Search by name or identifier
  badgectl show EXT-001             # Show one badge in detail
  badgectl ask "Nombre de VIP"      # Ask the assistant
  badgectl stats --now 2024-06-15   # Statistics as of a given day`,
		SilenceUsage: true,
	}

	rosterFile := os.Getenv("ROSTER_FILE")
	if rosterFile == "" {
		rosterFile = defaultRosterFile
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", rosterFile, "Roster file (.xlsx, .xlsm or .csv)")
	root.PersistentFlags().StringVar(&opts.now, "now", "",
		"Reference date (YYYY-MM-DD or RFC 3339, default: current time)")
	root.PersistentFlags().StringVar(&opts.policy, "policy", string(domain.StatusPolicyDetail),
		"Status policy for the detail view: detail or aggregate")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log roster loading to stderr")

	root.AddCommand(
		newSearchCmd(opts),
		newShowCmd(opts),
		newAskCmd(opts),
		newStatsCmd(opts),
	)

	return root
}

// context returns a context carrying a logger that writes to the command's stderr.
func (o *options) context(cmd *cobra.Command) context.Context {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return domain.ContextWithLogger(cmd.Context(), logger)
}

func (o *options) referenceTime() (time.Time, error) {
	if o.now == "" {
		return time.Now().UTC(), nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, o.now); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse --now value [%s]", o.now)
}

// loadStore reads the roster file into a fresh store.
func (o *options) loadStore(ctx context.Context) (*datasources.RosterStore, error) {
	store := datasources.NewRosterStore()
	reload := command.NewReloadRoster(spreadsheet.NewLoader(o.file), store, nil)
	if _, err := reload.Execute(ctx, command.ReloadRosterRequest{}); err != nil {
		return nil, fmt.Errorf("loading %s: %w", o.file, err)
	}
	return store, nil
}
