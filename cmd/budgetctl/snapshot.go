package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vibe-budget/backend/internal/domain/entity"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
	"github.com/vibe-budget/backend/internal/integration/entrypoint/dto"
)

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print the budget snapshot",
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
			if opts.output == "json" {
				return writeJSON(cmd.OutOrStdout(), dto.ToSnapshotResponse(snapshot, false))
			}
			return renderSnapshot(cmd.OutOrStdout(), snapshot)
		},
	}
}

func renderSnapshot(out io.Writer, s entity.BudgetSnapshot) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "BUDGET SNAPSHOT\t%s\n", s.LastUpdated.Format(dateLayout))
	fmt.Fprintln(tw, "\t")
	fmt.Fprintf(tw, "Monthly income\t%s\n", money(s.MonthlyIncome))
	fmt.Fprintf(tw, "Savings goal\t%s\n", money(s.SavingsGoal))
	fmt.Fprintf(tw, "Total bills\t%s\n", money(s.TotalBills))
	fmt.Fprintf(tw, "Card balances\t%s\n", money(s.TotalCreditCardSpent))
	fmt.Fprintf(tw, "Bills paid by card\t%s\n", money(s.TotalCreditCardBillsPaidByCard))
	fmt.Fprintf(tw, "Total spent\t%s\n", money(s.TotalSpent))
	fmt.Fprintln(tw, "\t")
	fmt.Fprintf(tw, "Discretion limit\t%s\n", money(s.DiscretionLimit))
	fmt.Fprintf(tw, "Discretionary spent\t%s\n", money(s.DiscretionarySpent))
	fmt.Fprintf(tw, "Discretionary left\t%s (%s%%)\n", money(s.DiscretionaryLeft), valueobject.FormatMoney(s.DiscretionaryLeftPercentage))
	if s.IsOverBudget() {
		fmt.Fprintln(tw, "Status\tOVER BUDGET")
	}

	if bills := s.AllBills(); len(bills) > 0 {
		fmt.Fprintln(tw, "\t")
		fmt.Fprintln(tw, "BILL\tAMOUNT\tDUE\tTYPE\tSTATUS\tCARD")
		for _, b := range bills {
			card := ""
			if b.PaidByCreditCard {
				card = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", b.Name, money(b.Amount), b.DueDate, b.Type, b.Status, card)
		}
	}

	return tw.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
