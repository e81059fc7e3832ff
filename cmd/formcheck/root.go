package main

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formcheck"
	"github.com/goliatone/go-formcheck/internal/config"
	"github.com/goliatone/go-formcheck/internal/prompt"
	"github.com/goliatone/go-formcheck/pkg/document"
	"github.com/goliatone/go-formcheck/pkg/engine"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
)

// errCheckFailed signals that findings were already reported and the process
// should exit non-zero without printing anything else.
var errCheckFailed = errors.New("formcheck: one or more documents failed")

const (
	remoteTimeout    = 10 * time.Second
	maxDocumentBytes = 16 << 20
)

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfgFile string
	verbose bool
	cfg     config.Config
	logger  *slog.Logger

	// driver answers fix prompts; nil selects the survey driver.
	driver prompt.Driver
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut, cfg: config.Default()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formcheck",
		Short: "Validate, score and repair form-definition documents",
		Long: `formcheck checks declarative form documents (MenuID, Label, Fields,
Validations) for structural errors, inconsistent key casing, missing
type-specific configuration and duplicate ids. Every run produces a 0-100
quality score; fixable findings can be repaired automatically.

Settings are read from .formcheck.yaml in the working directory unless
--config points elsewhere. Flags take precedence over the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (default .formcheck.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newValidateCmd(a),
		newFixCmd(a),
		newSchemaCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	return nil
}

// engineOptions applies the mode flag, when set, over the config file.
func (a *app) engineOptions(cmd *cobra.Command, mode string) (engine.Options, error) {
	opts := a.cfg.EngineOptions()
	if cmd.Flags().Changed("mode") {
		parsed, err := engine.ParseMode(mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = parsed
	}
	return opts, nil
}

func (a *app) orchestrator(opts engine.Options) *orchestrator.Orchestrator {
	loader := formcheck.NewLoader(
		document.WithHTTPFallback(remoteTimeout),
		document.WithMaxBytes(maxDocumentBytes),
	)
	return orchestrator.New(
		orchestrator.WithLoader(loader),
		orchestrator.WithEngineOptions(opts),
	)
}

func (a *app) promptDriver() prompt.Driver {
	if a.driver != nil {
		return a.driver
	}
	return prompt.NewSurveyDriver(a.errOut)
}
