package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jbeshir/badge-desk/internal/command"
	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
	"github.com/spf13/cobra"
)

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query...]",
		Short: "Search badges by name, external ID or internal number",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.context(cmd)
			store, err := opts.loadStore(ctx)
			if err != nil {
				return err
			}

			res, err := command.NewSearchBadges(store).Execute(ctx, command.SearchBadgesRequest{
				Query: strings.Join(args, " "),
			})
			if err != nil {
				return fmt.Errorf("searching badges: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(res.Matches) == 0 {
				_, _ = fmt.Fprintln(out, "Aucun résultat.")
			}
			for _, b := range res.Matches {
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n",
					orNotAvailable(b.ExternalID), orNotAvailable(b.InternalNumber), orNotAvailable(b.DisplayName()))
			}
			if len(res.Suggestions) > 0 {
				_, _ = fmt.Fprintf(out, "Suggestions : %s\n", strings.Join(res.Suggestions, ", "))
			}
			return nil
		},
	}
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <badge-id>",
		Short: "Show one badge by external ID or internal number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.context(cmd)

			policy, err := domain.ParseStatusPolicy(opts.policy)
			if err != nil {
				return err
			}
			now, err := opts.referenceTime()
			if err != nil {
				return err
			}
			store, err := opts.loadStore(ctx)
			if err != nil {
				return err
			}

			detail, err := command.NewGetBadgeDetail(store).Execute(ctx, command.GetBadgeDetailRequest{
				ID:     args[0],
				Policy: policy,
				Now:    now,
			})
			if errors.Is(err, command.ErrBadgeNotFound) {
				return fmt.Errorf("no badge with ID %s", args[0])
			}
			if err != nil {
				return fmt.Errorf("fetching badge: %w", err)
			}

			_, err = io.WriteString(cmd.OutOrStdout(), domain.FormatDetail(detail))
			return err
		},
	}
}

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message...>",
		Short: "Ask the badge assistant a question",
		Long: "Ask the badge assistant a question. Examples:\n  " +
			strings.Join(command.SuggestedQuestions, "\n  "),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.context(cmd)

			now, err := opts.referenceTime()
			if err != nil {
				return err
			}

			store, err := opts.loadStore(ctx)
			if err != nil {
				// The assistant has its own reply for a missing roster.
				domain.LoggerFromContext(ctx).WarnContext(ctx, "roster unavailable", "error", err)
				store = datasources.NewRosterStore()
			}

			res, err := command.NewRespondToMessage(store).Execute(ctx, command.RespondToMessageRequest{
				Message: strings.Join(args, " "),
				Now:     now,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Reply)
			return err
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print roster statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := opts.context(cmd)

			now, err := opts.referenceTime()
			if err != nil {
				return err
			}
			store, err := opts.loadStore(ctx)
			if err != nil {
				return err
			}

			stats, err := command.NewComputeRosterStats(store).Execute(ctx, command.ComputeRosterStatsRequest{Now: now})
			if err != nil {
				return fmt.Errorf("computing statistics: %w", err)
			}

			_, err = io.WriteString(cmd.OutOrStdout(), formatStats(stats))
			return err
		},
	}
}

func formatStats(s command.RosterStats) string {
	var sb strings.Builder
	line := func(label string, value any) {
		_, _ = fmt.Fprintf(&sb, "%-28s %v\n", label, value)
	}

	line("Total:", s.Total)
	line("Actifs:", s.Active)
	line("Inactifs:", s.Inactive)
	if s.VIP != nil {
		line("VIP:", *s.VIP)
	} else {
		line("VIP:", "colonne absente")
	}
	if s.Expired != nil {
		line("Expirés:", *s.Expired)
		line("Expirant dans 30 jours:", *s.ExpiringSoon)
		line("N'expirant pas bientôt:", *s.NotExpiringSoon)
	}

	codes := make([]int, 0, len(s.ByTokenStatus))
	for code := range s.ByTokenStatus {
		n, err := strconv.Atoi(code)
		if err == nil {
			codes = append(codes, n)
		}
	}
	slices.Sort(codes)
	for _, code := range codes {
		line(fmt.Sprintf("Statut %d:", code), s.ByTokenStatus[strconv.Itoa(code)])
	}

	for _, m := range s.IssuedPerMonth {
		line("Émis en "+m.Month+":", m.Count)
	}

	for _, t := range slices.Sorted(maps.Keys(s.ByType)) {
		line("Type "+t+":", s.ByType[t])
	}

	return sb.String()
}

func orNotAvailable(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
