package main

import (
	"encoding/json"
	"io"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/rules"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "query <path> <expression>",
		Short:         "Run a jq expression against a rule document",
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(args[0], args[1], cmd.OutOrStdout())
		},
	}
	return cmd
}

func runQuery(path, expr string, stdout io.Writer) error {
	raw, err := rules.LoadRaw(path)
	if err != nil {
		return err
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	iter := query.Run(raw)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return err
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}
