package main

import (
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/document"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
)

const stdinArg = "-"

var documentExtensions = []string{".json", ".yaml", ".yml"}

// requests turns command arguments into orchestrator requests. Directories
// expand to the form documents they contain, sorted by path.
func (a *app) requests(args []string) ([]orchestrator.Request, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one file, directory, URL or - is required")
	}

	var out []orchestrator.Request
	for _, arg := range args {
		switch {
		case arg == stdinArg:
			raw, err := io.ReadAll(a.in)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			doc, err := document.NewDocument(document.SourceInline("stdin"), raw)
			if err != nil {
				return nil, fmt.Errorf("stdin: %w", err)
			}
			out = append(out, orchestrator.Request{Document: &doc})
		case strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://"):
			if _, err := url.ParseRequestURI(arg); err != nil {
				return nil, fmt.Errorf("invalid URL %q: %w", arg, err)
			}
			out = append(out, orchestrator.Request{Source: document.SourceFromURL(arg)})
		default:
			paths, err := expandPath(arg)
			if err != nil {
				return nil, err
			}
			for _, path := range paths {
				out = append(out, orchestrator.Request{Source: document.SourceFromFile(path)})
			}
		}
	}
	return out, nil
}

func expandPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var out []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != path && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !isDocumentFile(name) {
			return nil
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no form documents found", path)
	}
	sort.Strings(out)
	return out, nil
}

func isDocumentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range documentExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
