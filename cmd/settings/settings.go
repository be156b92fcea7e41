// Package settings handles the budget settings command
package settings

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/payday-budget/cmd/root"
)

// Cmd represents the settings command
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the budget settings",
	Long: `Without flags the current settings are printed. Flags change the payday
anchor and the auto-approve behavior for rule and history matches.`,
	RunE: settingsFunc,
}

func init() {
	Cmd.Flags().IntVar(&root.Payday, "payday", 0, "Day of month the budget month starts on (1-28)")
	Cmd.Flags().BoolVar(&root.AutoApproveRule, "auto-approve-rule", false, "Auto-approve rule matches at commit")
	Cmd.Flags().BoolVar(&root.AutoApproveHistory, "auto-approve-history", false, "Auto-approve history matches at commit")
}

func settingsFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	current, err := st.GetSettings(ctx)
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("payday") {
		if root.Payday < 1 || root.Payday > 28 {
			return fmt.Errorf("payday must be between 1 and 28, got %d", root.Payday)
		}
		current.Payday = root.Payday
		changed = true
	}
	if cmd.Flags().Changed("auto-approve-rule") {
		current.AutoApproveRule = root.AutoApproveRule
		changed = true
	}
	if cmd.Flags().Changed("auto-approve-history") {
		current.AutoApproveHistory = root.AutoApproveHistory
		changed = true
	}

	if changed {
		if err := st.PutSettings(ctx, current); err != nil {
			return err
		}
		root.Log.Info("Settings updated")
	}

	fmt.Printf("payday:               %d\n", current.Payday)
	fmt.Printf("auto-approve rule:    %t\n", current.AutoApproveRule)
	fmt.Printf("auto-approve history: %t\n", current.AutoApproveHistory)
	return nil
}
