// Package report handles the month summary and CSV export commands
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/payday-budget/cmd/root"
	"fjacquet/payday-budget/internal/logging"
	"fjacquet/payday-budget/internal/models"
	"fjacquet/payday-budget/internal/period"
	"fjacquet/payday-budget/internal/report"
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Show the budget summary for a month",
	Long: `Compute the effective configuration, planned costs and actuals for one
budget month and print them. With --export the month's transactions are
also written to a CSV file.`,
	RunE: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.ReportMonth, "month", "m", "", "Budget month as YYYY-MM (default: current month)")
	Cmd.Flags().StringVarP(&root.ExportPath, "export", "e", "", "Write the month's transactions to this CSV file")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	month := models.MonthKey(root.ReportMonth)
	if root.ReportMonth == "" {
		month = models.MonthKeyFromTime(time.Now())
	} else if !month.IsValid() {
		return fmt.Errorf("invalid month %q, expected YYYY-MM", root.ReportMonth)
	}

	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	buckets, err := st.ListBuckets(ctx)
	if err != nil {
		return err
	}
	groups, err := st.ListBudgetGroups(ctx)
	if err != nil {
		return err
	}
	subs, err := st.ListSubCategories(ctx)
	if err != nil {
		return err
	}
	templates, err := st.ListTemplates(ctx)
	if err != nil {
		return err
	}
	configs, err := st.ListMonthConfigs(ctx)
	if err != nil {
		return err
	}
	settings, err := st.GetSettings(ctx)
	if err != nil {
		return err
	}

	inputs := report.Inputs{
		Buckets:       buckets,
		Groups:        groups,
		SubCategories: subs,
		Templates:     templates,
		Configs:       configs,
		Settings:      settings,
	}

	iv := period.Compute(month, settings.Payday)
	inputs.Transactions, err = st.TransactionsInRange(ctx, iv.Start, iv.End)
	if err != nil {
		return err
	}

	summary := report.BuildMonthSummary(month, inputs, time.Now())
	printSummary(summary)

	if root.ExportPath != "" {
		if err := exportCSV(root.ExportPath, inputs.Transactions); err != nil {
			return err
		}
		root.Log.WithField(logging.FieldFile, root.ExportPath).Info("Exported transactions")
	}
	return nil
}

func printSummary(s report.MonthSummary) {
	fmt.Printf("Budget month %s (%s to %s)\n\n",
		s.Month,
		s.Interval.Start.Format("2006-01-02"),
		s.Interval.End.Format("2006-01-02"))

	fmt.Println("Buckets:")
	for _, line := range s.Buckets {
		marker := ""
		if line.IsInherited {
			marker = " (inherited)"
		}
		fmt.Printf("  %-24s planned %10s  funded %10s  spent %10s%s\n",
			line.Bucket.Name,
			line.Planned.StringFixed(2),
			line.Funding.StringFixed(2),
			line.Consumption.StringFixed(2),
			marker)
		if line.Bucket.Type == models.BucketGoal {
			fmt.Printf("  %-24s saved so far %s of %s\n",
				"", line.Saved.StringFixed(2), line.Bucket.TargetAmount.StringFixed(2))
		}
	}

	fmt.Println("\nGroups:")
	for _, line := range s.Groups {
		fmt.Printf("  %-24s limit %10s  spent %10s\n",
			line.Group.Name,
			line.Limit.StringFixed(2),
			line.Spent.StringFixed(2))
	}

	if len(s.Unallocated) > 0 {
		fmt.Println("\nUnallocated by account:")
		for account, amount := range s.Unallocated {
			fmt.Printf("  %-24s %10s\n", account, amount.StringFixed(2))
		}
	}
}

func exportCSV(path string, txs []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()
	return report.WriteTransactionsCSV(f, txs)
}
