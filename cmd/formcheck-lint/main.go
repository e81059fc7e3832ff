package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formcheck"
	"github.com/goliatone/go-formcheck/pkg/document"
	"github.com/goliatone/go-formcheck/pkg/engine"
)

type violation struct {
	file     string
	location string
	severity engine.Severity
	code     string
	message  string
}

type lintConfig struct {
	mode     engine.Mode
	warnings bool
	minScore int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("formcheck-lint", flag.ContinueOnError)
	flags.SetOutput(stderr)
	mode := flags.String("mode", "standard", "validation mode: standard, strict, permissive")
	warnings := flags.Bool("warnings", false, "report warnings as violations")
	minScore := flags.Int("min-score", 0, "report documents scoring below this value")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: %s [flags] [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flags.Output(), "\nLint form documents and list every violation, sorted by file and field.\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}

	parsedMode, err := engine.ParseMode(*mode)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	cfg := lintConfig{mode: parsedMode, warnings: *warnings, minScore: *minScore}

	paths := flags.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectFiles(paths)
	if err != nil {
		fmt.Fprintf(stderr, "lint: %v\n", err)
		return 1
	}

	ctx := context.Background()
	loader := formcheck.NewLoader()

	var violations []violation
	for _, path := range files {
		linted, err := lintFile(ctx, loader, path, cfg)
		if err != nil {
			fmt.Fprintf(stderr, "lint %s: %v\n", path, err)
			return 1
		}
		violations = append(violations, linted...)
	}

	if len(violations) == 0 {
		fmt.Fprintf(stdout, "%d document(s) clean\n", len(files))
		return 0
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(stderr, "%s: %s -> %s (%s %s)\n", v.file, v.location, v.message, v.severity, v.code)
	}
	return 1
}

func lintFile(ctx context.Context, loader document.Loader, path string, cfg lintConfig) ([]violation, error) {
	doc, err := loader.Load(ctx, document.SourceFromFile(path))
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	report := engine.ValidateDocument(doc, engine.Options{Mode: cfg.mode})

	var result []violation
	add := func(f engine.Finding) {
		result = append(result, violation{
			file:     path,
			location: f.Field,
			severity: f.Severity,
			code:     f.Code,
			message:  f.Message,
		})
	}
	for _, f := range report.Errors {
		add(f)
	}
	if cfg.warnings {
		for _, f := range report.Warnings {
			add(f)
		}
	}
	if report.Score < cfg.minScore {
		result = append(result, violation{
			file:     path,
			location: "document",
			severity: engine.SeverityError,
			code:     "score",
			message:  fmt.Sprintf("score %d is below %d", report.Score, cfg.minScore),
		})
	}
	return result, nil
}

func collectFiles(paths []string) ([]string, error) {
	var out []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, root)
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			switch strings.ToLower(filepath.Ext(p)) {
			case ".json", ".yaml", ".yml":
				if !strings.HasPrefix(d.Name(), ".") {
					out = append(out, p)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}
