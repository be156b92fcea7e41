// Package backupcmd handles backup export, listing and restore commands
package backupcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/payday-budget/cmd/root"
	"fjacquet/payday-budget/internal/backup"
	"fjacquet/payday-budget/internal/logging"
)

// Cmd represents the backup command
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Export, list and restore full database backups",
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a full snapshot of the database to a backup file",
	RunE:  createFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backup files",
	RunE:  listFunc,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the database contents with a backup file",
	Long: `Validate the named backup file and atomically replace every table with
its contents. An invalid file leaves the database untouched.`,
	RunE: restoreFunc,
}

func init() {
	createCmd.Flags().StringVarP(&root.BackupName, "name", "n", "", "Backup file name (default: timestamped)")
	restoreCmd.Flags().StringVarP(&root.BackupName, "name", "n", "", "Backup file name to restore")
	restoreCmd.MarkFlagRequired("name")

	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(restoreCmd)
}

func newService() (*backup.Service, func() error, error) {
	st, err := root.OpenStore()
	if err != nil {
		return nil, nil, err
	}
	blobs, err := backup.NewFSBlobStore(root.Cfg.BackupDirectory())
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return backup.NewService(st, blobs, root.Log), st.Close, nil
}

func createFunc(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := newService()
	if err != nil {
		return err
	}
	defer closeStore()

	name, err := svc.Export(cmd.Context(), root.BackupName)
	if err != nil {
		return err
	}
	root.Log.WithField(logging.FieldFile, name).Info("Backup created")
	return nil
}

func listFunc(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := newService()
	if err != nil {
		return err
	}
	defer closeStore()

	names, err := svc.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No backups found")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func restoreFunc(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := newService()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := svc.Restore(cmd.Context(), root.BackupName); err != nil {
		return err
	}
	root.Log.WithField(logging.FieldFile, root.BackupName).Info("Backup restored")
	return nil
}
