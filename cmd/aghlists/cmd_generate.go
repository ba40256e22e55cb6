package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/IGLOU-EU/go-wildcard/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ChristianVerhoeven/adGuardHomeLists/internal/config"
	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/generate"
	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/output"
	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/rules"
)

type generateOptions struct {
	dest     string
	source   string
	strict   bool
	manifest bool
	asJSON   bool
	filter   []string
}

func generateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate <path> [destination]",
		Short: "Generate filter lists from a rule document",
		Args:  cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{"json", "jsonc"}, cobra.ShellCompDirectiveFilterFileExt
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 && opts.dest == "" {
				opts.dest = args[1]
			}
			return runGenerate(args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&opts.dest, "dest", "",
		"Destination directory for the generated lists (default \""+config.DefaultDestination+"\").")
	cmd.Flags().StringVar(&opts.source, "source", "",
		"Source marker written into each list header.")
	cmd.Flags().BoolVar(&opts.strict, "strict", false,
		"Warn about rules skipped due to an unrecognized action.")
	cmd.Flags().BoolVar(&opts.manifest, "manifest", false,
		"Also write a manifest.yaml describing the run.")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false,
		"Print the summary in JSON format.")
	cmd.Flags().StringSliceVar(&opts.filter, "filter", []string{},
		"Only generate rule sets matching the wildcard pattern(s).")
	return cmd
}

func runGenerate(path string, opts generateOptions, stdout, stderr io.Writer) error {
	cnf, err := config.Load(".")
	if err != nil {
		return err
	}
	if opts.dest != "" {
		cnf.Destination = opts.dest
	}
	if opts.source != "" {
		cnf.Source = opts.source
	}
	if opts.strict {
		cnf.Strict = true
	}

	doc, err := rules.Load(path)
	if err != nil {
		return err
	}

	if len(opts.filter) > 0 {
		doc, err = filterDocument(doc, opts.filter)
		if err != nil {
			return err
		}
	}

	dir, err := output.EnsureDir(cnf.Destination)
	if err != nil {
		return err
	}

	note := noter(stderr)
	note("Writing lists to %s", dir)

	gen := generate.NewGenerator(output.NewDirWriter(dir), &generate.Config{
		Source:   cnf.Source,
		Strict:   cnf.Strict,
		Manifest: opts.manifest,
		Note:     note,
	})
	summaries, err := gen.Run(doc)
	if err != nil {
		return err
	}

	if opts.asJSON {
		return json.NewEncoder(stdout).Encode(summaries)
	}
	printSummaries(summaries, stdout)
	return nil
}

func filterDocument(doc *rules.Document, patterns []string) (*rules.Document, error) {
	var filtered []*rules.RuleSet
	for _, set := range doc.Sets() {
		for _, p := range patterns {
			if wildcard.Match(strings.TrimSpace(p), set.Name) {
				filtered = append(filtered, set)
				break
			}
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no rule sets match the filter: %s", strings.Join(patterns, ", "))
	}
	return rules.NewDocument(filtered)
}

func printSummaries(summaries []generate.ListSummary, stdout io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(stdout)
	tbl.SetAllowedRowLength(terminalWidth())
	tbl.AppendHeader(table.Row{"List", "File", "Rules", "Skipped"})
	for _, s := range summaries {
		tbl.AppendRow(table.Row{s.Name, s.File, s.Rules, s.Skipped})
	}
	tbl.Render()
}
