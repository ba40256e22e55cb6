package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/rules"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list <path>",
		Short:         "Show the rule sets in a rule document",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args[0], cmd.OutOrStdout())
		},
	}
	return cmd
}

func runList(path string, stdout io.Writer) error {
	doc, err := rules.Load(path)
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(stdout)
	tbl.SetAllowedRowLength(terminalWidth())
	tbl.AppendHeader(table.Row{"Name", "Description", "Rules"})
	for _, set := range doc.Sets() {
		tbl.AppendRow(table.Row{set.Name, set.Description, len(set.Rules)})
	}
	tbl.Render()
	return nil
}
