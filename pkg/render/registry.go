package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/goliatone/go-formcheck/pkg/engine"
)

var (
	// ErrNoRenderer is returned by Get and Write for formats nobody registered.
	ErrNoRenderer = errors.New("render: no renderer for format")
	// ErrDuplicateRenderer is returned when a format is registered twice.
	ErrDuplicateRenderer = errors.New("render: format already registered")
)

// Registry maps report formats to their renderers. It is safe for
// concurrent use once populated.
type Registry struct {
	mu     sync.RWMutex
	byName map[Format]Renderer
}

func NewRegistry() *Registry {
	return &Registry{byName: map[Format]Renderer{}}
}

// NewDefaultRegistry returns a registry holding the text, JSON, YAML and HTML
// renderers.
func NewDefaultRegistry() (*Registry, error) {
	page, err := NewHTML()
	if err != nil {
		return nil, err
	}
	registry := NewRegistry()
	for _, renderer := range []Renderer{Text{}, JSON{}, YAML{}, page} {
		if err := registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register files renderer under the format its Name reports.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: nil renderer")
	}
	format := Format(renderer.Name())
	if format == "" {
		return errors.New("render: renderer has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[format]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateRenderer, format)
	}
	r.byName[format] = renderer
	return nil
}

func (r *Registry) Get(format Format) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byName[format]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoRenderer, format)
	}
	return renderer, nil
}

// List names the registered formats, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byName))
	for format := range r.byName {
		names = append(names, string(format))
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Write renders report in format and copies the bytes to w.
func (r *Registry) Write(ctx context.Context, w io.Writer, report engine.Report, format Format, options Options) error {
	renderer, err := r.Get(format)
	if err != nil {
		return err
	}
	payload, err := renderer.Render(ctx, report, options)
	if err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}
