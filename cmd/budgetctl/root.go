package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vibe-budget/backend/internal/application/usecase/budget"
)

const dateLayout = "2006-01-02"

type rootOptions struct {
	scenarioPath string
	today        string
	output       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Vibe Budget scenario calculator",
		Long:          "Derive the budget snapshot and weekly spending tiers from a TOML scenario file.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&opts.scenarioPath, "file", "f", "", "Scenario TOML file")
	root.PersistentFlags().StringVar(&opts.today, "today", "", "Evaluate as of this date (YYYY-MM-DD, default: now)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format: text or json")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(newSnapshotCmd(opts), newTiersCmd(opts))
	return root
}

// session loads the scenario and builds a budget session as of --today.
func (o *rootOptions) session() (*budget.Session, error) {
	now, err := o.now()
	if err != nil {
		return nil, err
	}

	sc, err := LoadScenario(o.scenarioPath)
	if err != nil {
		return nil, err
	}

	return sc.Session(now), nil
}

func (o *rootOptions) now() (time.Time, error) {
	if o.today == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(dateLayout, o.today, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q, want YYYY-MM-DD: %w", o.today, err)
	}
	return t, nil
}

func (o *rootOptions) validateOutput() error {
	switch o.output {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (text or json)", o.output)
	}
}
