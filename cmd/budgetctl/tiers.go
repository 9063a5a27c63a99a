package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/service"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
	"github.com/vibe-budget/backend/internal/integration/entrypoint/dto"
)

func newTiersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Print the five weekly spending tiers with the best one marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validateOutput(); err != nil {
				return err
			}
			session, err := opts.session()
			if err != nil {
				return err
			}

			snapshot := session.Recompute()
			tiers := session.Tiers()
			best, _ := service.BestTier(tiers)

			if opts.output == "json" {
				return writeJSON(cmd.OutOrStdout(), dto.ToTiersResponse(tiers, best, session.Settings().SelectedWeeklyTarget, snapshot))
			}
			return renderTiers(cmd.OutOrStdout(), snapshot, tiers)
		},
	}
}

func renderTiers(out io.Writer, s entity.BudgetSnapshot, tiers []entity.WeeklyTier) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "WEEKLY TIERS\tleft %s of %s\n", money(s.DiscretionaryLeft), money(s.DiscretionLimit))
	fmt.Fprintln(tw, "\t")
	fmt.Fprintln(tw, "\tTIER\tWEEKLY\tREMAINING\tPER DAY\tSTATUS")
	for _, t := range tiers {
		marker := ""
		switch {
		case t.IsBest && t.Selected:
			marker = "*>"
		case t.IsBest:
			marker = "*"
		case t.Selected:
			marker = ">"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			marker, t.Label, money(t.Value), money(t.Remaining), money(t.DailyRemaining), tierStatus(t))
	}
	fmt.Fprintln(tw, "\t")
	fmt.Fprintln(tw, "* best fit   > selected")

	return tw.Flush()
}

func tierStatus(t entity.WeeklyTier) string {
	switch {
	case t.OverBudget:
		return "over budget"
	case t.GettingTight:
		return "getting tight"
	case t.OnTrack:
		return "on track"
	default:
		return ""
	}
}

func money(d decimal.Decimal) string {
	return "$" + valueobject.FormatMoney(d)
}
