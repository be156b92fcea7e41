package main

import (
	"fmt"
	"os"

	"fjacquet/payday-budget/cmd/backupcmd"
	"fjacquet/payday-budget/cmd/commit"
	"fjacquet/payday-budget/cmd/importcmd"
	"fjacquet/payday-budget/cmd/report"
	"fjacquet/payday-budget/cmd/root"
	"fjacquet/payday-budget/cmd/rulescmd"
	"fjacquet/payday-budget/cmd/settings"
)

func init() {
	root.Cmd.AddCommand(importcmd.Cmd)
	root.Cmd.AddCommand(commit.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(backupcmd.Cmd)
	root.Cmd.AddCommand(rulescmd.Cmd)
	root.Cmd.AddCommand(settings.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
