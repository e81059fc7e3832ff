package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck/internal/watch"
	"github.com/goliatone/go-formcheck/pkg/document"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/render"
)

type watchFlags struct {
	mode     string
	debounce time.Duration
}

func newWatchCmd(a *app) *cobra.Command {
	flags := &watchFlags{}
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-validate form documents whenever they change",
		Long: `Watch files or directories and print a fresh report for every form
document that is created or modified. Runs until interrupted.

Examples:
  formcheck watch forms/
  formcheck watch --mode strict --debounce 500ms forms/adjustments.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, a, flags, args)
		},
	}
	cmd.Flags().StringVar(&flags.mode, "mode", "", "validation mode: standard, strict, permissive")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", 0, "quiet period before re-validating")
	return cmd
}

func runWatch(cmd *cobra.Command, a *app, flags *watchFlags, args []string) error {
	opts, err := a.engineOptions(cmd, flags.mode)
	if err != nil {
		return err
	}
	config := watch.DefaultConfig()
	config.Paths = args
	config.Debounce = a.cfg.Watch.Debounce
	if cmd.Flags().Changed("debounce") {
		config.Debounce = flags.debounce
	}

	watcher, err := watch.New(config, a.logger)
	if err != nil {
		return err
	}

	gen := a.orchestrator(opts)
	return watcher.Watch(cmd.Context(), func(ctx context.Context, paths []string) {
		for _, path := range paths {
			a.report(ctx, gen, path)
		}
	})
}

// report validates one changed file and prints its text report. Files that
// disappeared between the event and the check are skipped.
func (a *app) report(ctx context.Context, gen *orchestrator.Orchestrator, path string) {
	result, err := gen.Check(ctx, orchestrator.Request{Source: document.SourceFromFile(path)})
	if err != nil {
		a.logger.Warn("could not check document", "path", path, "error", err)
		return
	}
	a.logger.Info("document checked",
		"path", path,
		"valid", result.Report.IsValid,
		"score", result.Report.Score,
	)
	out, err := gen.Render(ctx, result, render.FormatText, render.Options{HideSuggestions: true})
	if err != nil {
		a.logger.Error("render report", "path", path, "error", err)
		return
	}
	_, _ = a.out.Write(out)
}
