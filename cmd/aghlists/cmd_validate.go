package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/rules"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate <path>",
		Short:         "Validate a rule document without writing any files",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], cmd.OutOrStdout())
		},
	}
	return cmd
}

func runValidate(path string, stdout io.Writer) error {
	doc, err := rules.Load(path)
	if err != nil {
		return err
	}
	ruleCount := 0
	for _, set := range doc.Sets() {
		ruleCount += len(set.Rules)
	}
	fmt.Fprintf(stdout, "The rule document is valid: %d rule set(s), %d rule(s).\n", doc.Len(), ruleCount)
	return nil
}
