package validator

import (
	"fmt"
	"net/http"
)

// Component bundles the validation handler with its configuration so a
// server can mount it and keep one cache and one set of collectors.
type Component struct {
	opts    Options
	handler *handler
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) (*Component, error) {
	return newComponent(NewOptions(fns...))
}

func newComponent(opts Options) (*Component, error) {
	opts = NewOptions(func(o *Options) { *o = opts })
	h, err := newHandler(opts)
	if err != nil {
		return nil, err
	}
	return &Component{opts: opts, handler: h}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the shared net/http handler.
func (c *Component) Handler() http.Handler {
	return c.handler
}

// CachedReports reports how many reports are currently memoised.
func (c *Component) CachedReports() int {
	if c == nil || c.handler == nil {
		return 0
	}
	return c.handler.cache.len()
}

// RegisterRoutes mounts the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil || c.handler == nil {
		return "", fmt.Errorf("validator: component is not initialised")
	}
	if mux == nil {
		return "", errNilMux
	}
	pattern := mountPath(basePath, c.opts.RoutePath)
	mux.Handle(pattern, c.handler)
	return pattern, nil
}
