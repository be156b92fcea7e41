// Package importcmd handles bank file import and classification commands
package importcmd

import (
	"time"

	"github.com/spf13/cobra"

	"fjacquet/payday-budget/cmd/root"
	"fjacquet/payday-budget/internal/classify"
	"fjacquet/payday-budget/internal/fileparser"
	"fjacquet/payday-budget/internal/logging"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a bank CSV export and stage classified transactions",
	Long: `Parse a bank CSV export, drop duplicates of already imported
transactions, classify the rest through rules, history, heuristics and
optionally AI, and stage the result for review.`,
	RunE: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.ImportFile, "file", "f", "", "Bank CSV export to import")
	Cmd.Flags().StringVarP(&root.ImportAccount, "account", "a", "", "Account id the file belongs to")
	Cmd.Flags().BoolVar(&root.UseAI, "ai", false, "Ask the AI classifier about unmatched transactions")
	Cmd.MarkFlagRequired("file")
	Cmd.MarkFlagRequired("account")
}

func importFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	records, err := fileparser.ParseFile(root.ImportFile)
	if err != nil {
		return err
	}
	root.Log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: root.ImportFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
	).Info("Parsed import file")

	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	importRules, err := st.ListImportRules(ctx)
	if err != nil {
		return err
	}
	buckets, err := st.ListBuckets(ctx)
	if err != nil {
		return err
	}
	mains, err := st.ListMainCategories(ctx)
	if err != nil {
		return err
	}
	subs, err := st.ListSubCategories(ctx)
	if err != nil {
		return err
	}
	existing, err := st.ListTransactions(ctx)
	if err != nil {
		return err
	}
	staged, err := st.ListStaged(ctx)
	if err != nil {
		return err
	}
	existing = append(existing, staged...)

	universe := classify.Universe{
		Buckets:        buckets,
		MainCategories: mains,
		SubCategories:  subs,
	}

	var classifier classify.Classifier
	if root.UseAI && root.Cfg.AI.Enabled {
		if root.Cfg.AI.APIKey == "" {
			root.Log.Warn("AI requested but no API key configured, skipping AI pass")
		} else {
			classifier = classify.NewGeminiClassifier(
				root.Cfg.AI.APIKey,
				root.Cfg.AI.Model,
				time.Duration(root.Cfg.AI.TimeoutSeconds)*time.Second,
				root.Log,
			)
		}
	}

	pipeline := classify.New(importRules, st, classifier, universe, root.Log)
	newlyStaged := pipeline.Run(ctx, records, root.ImportAccount, existing)

	if err := st.PutStaged(ctx, newlyStaged); err != nil {
		return err
	}

	root.Log.WithFields(
		logging.Field{Key: logging.FieldAccount, Value: root.ImportAccount},
		logging.Field{Key: logging.FieldCount, Value: len(newlyStaged)},
	).Info("Staged imported transactions for review")
	return nil
}
