package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck/pkg/render"
)

type validateFlags struct {
	format          string
	mode            string
	minScore        int
	autoFix         bool
	hideSuggestions bool
}

func newValidateCmd(a *app) *cobra.Command {
	flags := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate form documents and print their reports",
		Long: `Validate one or more form documents. Arguments may be files, directories
(searched for .json, .yaml and .yml files), http(s) URLs, or - for stdin.

The command exits non-zero when any document has errors or scores below
--min-score.

Examples:
  formcheck validate forms/
  formcheck validate --mode strict --min-score 80 forms/adjustments.json
  cat form.yaml | formcheck validate --format json -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, a, flags, args)
		},
	}
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "report format: text, json, yaml, html")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "validation mode: standard, strict, permissive")
	cmd.Flags().IntVar(&flags.minScore, "min-score", 0, "fail when a document scores below this value")
	cmd.Flags().BoolVar(&flags.autoFix, "autofix", false, "include the repaired document in json/yaml reports")
	cmd.Flags().BoolVar(&flags.hideSuggestions, "hide-suggestions", false, "omit suggestions from the report")
	return cmd
}

func runValidate(cmd *cobra.Command, a *app, flags *validateFlags, args []string) error {
	opts, err := a.engineOptions(cmd, flags.mode)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("autofix") {
		opts.AutoFix = flags.autoFix
	}

	format := a.cfg.RenderFormat()
	if cmd.Flags().Changed("format") {
		if format, err = render.ParseFormat(flags.format); err != nil {
			return err
		}
	}
	minScore := a.cfg.MinScore
	if cmd.Flags().Changed("min-score") {
		minScore = flags.minScore
	}

	requests, err := a.requests(args)
	if err != nil {
		return err
	}

	gen := a.orchestrator(opts)
	failed := 0
	for _, req := range requests {
		result, err := gen.Check(cmd.Context(), req)
		if err != nil {
			return err
		}
		out, err := gen.Render(cmd.Context(), result, format, render.Options{
			HideSuggestions: flags.hideSuggestions,
			IncludeDocument: opts.AutoFix,
		})
		if err != nil {
			return err
		}
		if _, err := a.out.Write(out); err != nil {
			return err
		}
		if !result.Passed(minScore) {
			failed++
		}
	}

	if len(requests) > 1 && format == render.FormatText {
		fmt.Fprintf(a.out, "\n%d of %d document(s) passed\n", len(requests)-failed, len(requests))
	}
	if failed > 0 {
		return errCheckFailed
	}
	return nil
}
