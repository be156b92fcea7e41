// Package commit handles committing approved staged transactions
package commit

import (
	"github.com/spf13/cobra"

	"fjacquet/payday-budget/cmd/root"
	"fjacquet/payday-budget/internal/approval"
	"fjacquet/payday-budget/internal/logging"
)

// Cmd represents the commit command
var Cmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit approved staged transactions to the ledger",
	Long: `Move every staged transaction that is fully classified and approved,
either manually or through the auto-approve settings, into the verified
ledger. Unapproved transactions stay staged.`,
	RunE: commitFunc,
}

func commitFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	staged, err := st.ListStaged(ctx)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		root.Log.Info("Nothing staged, nothing to commit")
		return nil
	}

	settings, err := st.GetSettings(ctx)
	if err != nil {
		return err
	}

	committed, remaining, err := approval.Commit(ctx, st, staged, settings)
	if err != nil {
		return err
	}

	root.Log.WithFields(
		logging.Field{Key: "committed", Value: len(committed)},
		logging.Field{Key: "remaining", Value: len(remaining)},
	).Info("Commit finished")
	return nil
}
