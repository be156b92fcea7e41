// Package rulescmd handles import rule maintenance commands
package rulescmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/payday-budget/cmd/root"
	"fjacquet/payday-budget/internal/logging"
	"fjacquet/payday-budget/internal/rules"
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Maintain import classification rules",
}

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load rules from a YAML file into the database",
	Args:  cobra.ExactArgs(1),
	RunE:  loadFunc,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the stored rules to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  exportFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored rules in evaluation order",
	RunE:  listFunc,
}

func init() {
	Cmd.AddCommand(loadCmd)
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(listCmd)
}

func loadFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	loaded, err := rules.Load(args[0])
	if err != nil {
		return err
	}

	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	for _, rule := range loaded {
		if err := st.PutImportRule(ctx, rule); err != nil {
			return err
		}
	}

	root.Log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: args[0]},
		logging.Field{Key: logging.FieldCount, Value: len(loaded)},
	).Info("Loaded import rules")
	return nil
}

func exportFunc(cmd *cobra.Command, args []string) error {
	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stored, err := st.ListImportRules(cmd.Context())
	if err != nil {
		return err
	}
	if err := rules.Save(args[0], stored); err != nil {
		return err
	}

	root.Log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: args[0]},
		logging.Field{Key: logging.FieldCount, Value: len(stored)},
	).Info("Exported import rules")
	return nil
}

func listFunc(cmd *cobra.Command, args []string) error {
	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stored, err := st.ListImportRules(cmd.Context())
	if err != nil {
		return err
	}
	for i, rule := range stored {
		fmt.Printf("%3d. [%s] %q -> %s bucket=%s main=%s sub=%s\n",
			i+1, rule.MatchType, rule.Keyword, rule.TargetType,
			rule.TargetBucketID, rule.TargetCategoryMainID, rule.TargetCategorySubID)
	}
	return nil
}
