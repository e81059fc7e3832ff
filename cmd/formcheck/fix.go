package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck/internal/prompt"
	"github.com/goliatone/go-formcheck/pkg/document"
	"github.com/goliatone/go-formcheck/pkg/render"
)

type fixFlags struct {
	mode   string
	output string
	yes    bool
	dryRun bool
}

func newFixCmd(a *app) *cobra.Command {
	flags := &fixFlags{}
	cmd := &cobra.Command{
		Use:   "fix <path>",
		Short: "Repair a form document",
		Long: `Apply every automatic fix to a form document, re-validate the result and
check it against the canonical schema.

By default the fixes are summarised and you choose whether to overwrite the
file, print the repaired document, or discard it. --yes writes without
asking; --dry-run prints the repaired document to stdout.

Examples:
  formcheck fix forms/adjustments.json
  formcheck fix --yes --output fixed.yaml forms/adjustments.json
  cat form.json | formcheck fix --dry-run -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, a, flags, args)
		},
	}
	cmd.Flags().StringVar(&flags.mode, "mode", "", "validation mode: standard, strict, permissive")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the repaired document here instead of in place")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "write without prompting")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the repaired document instead of writing it")
	return cmd
}

func runFix(cmd *cobra.Command, a *app, flags *fixFlags, args []string) error {
	opts, err := a.engineOptions(cmd, flags.mode)
	if err != nil {
		return err
	}
	requests, err := a.requests(args)
	if err != nil {
		return err
	}
	if len(requests) != 1 {
		return fmt.Errorf("fix accepts exactly one document, %s expands to %d", args[0], len(requests))
	}
	req := requests[0]
	req.Fix = true
	req.Conformance = true

	ctx := cmd.Context()
	gen := a.orchestrator(opts)
	result, err := gen.Check(ctx, req)
	if err != nil {
		return err
	}
	location := result.Location()

	if result.Fix == nil {
		out, err := gen.Render(ctx, result, render.FormatText, render.Options{})
		if err != nil {
			return err
		}
		_, _ = a.errOut.Write(out)
		return errCheckFailed
	}

	target := flags.output
	if target == "" && result.Document.Source().Kind() == document.SourceKindFile {
		target = location
	}

	var action prompt.Action
	switch {
	case !result.Fix.Changed():
		fmt.Fprintf(a.errOut, "%s: nothing to fix\n", location)
		action = prompt.ActionDiscard
	case flags.dryRun || (flags.yes && target == ""):
		fmt.Fprintf(a.errOut, "%s: %s\n", location, prompt.Summary(*result.Fix))
		action = prompt.ActionPrint
	case flags.yes:
		fmt.Fprintf(a.errOut, "%s: %s\n", location, prompt.Summary(*result.Fix))
		action = prompt.ActionWrite
	default:
		action, err = prompt.Review(ctx, a.promptDriver(), location, *result.Fix)
		if err != nil {
			return err
		}
		if action == prompt.ActionWrite && target == "" {
			action = prompt.ActionPrint
		}
	}

	switch action {
	case prompt.ActionWrite:
		if err := writeDocument(target, result.Fix.Document, outputFormat(target, result.Document)); err != nil {
			return err
		}
		fmt.Fprintf(a.errOut, "wrote %s\n", target)
	case prompt.ActionPrint:
		if err := render.WriteDocument(a.out, result.Fix.Document, outputFormat(flags.output, result.Document)); err != nil {
			return err
		}
	}

	if c := result.Conformance; c != nil && !c.Valid {
		for _, issue := range c.Issues {
			fmt.Fprintf(a.errOut, "schema: %s: %s\n", issue.Field, issue.Message)
		}
	}
	if !result.Fix.After.IsValid {
		fmt.Fprintf(a.errOut, "%s: %d error(s) need manual attention\n", location, len(result.Fix.After.Errors))
		return errCheckFailed
	}
	return nil
}

// outputFormat picks the encoding from the target extension, falling back to
// the input's encoding.
func outputFormat(target string, doc document.Document) render.Format {
	switch strings.ToLower(filepath.Ext(target)) {
	case ".yaml", ".yml":
		return render.FormatYAML
	case ".json":
		return render.FormatJSON
	}
	if doc.Format() == document.FormatYAML {
		return render.FormatYAML
	}
	return render.FormatJSON
}

func writeDocument(path string, doc any, format render.Format) error {
	var buf bytes.Buffer
	if err := render.WriteDocument(&buf, doc, format); err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, buf.Bytes(), mode)
}
