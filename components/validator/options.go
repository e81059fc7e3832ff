package validator

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formcheck/pkg/engine"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	AutoFixParam string
	ModeParam    string
	FormatParam  string
	MaxBodyBytes int64
	CacheSize    int
	Guard        GuardFunc

	// Engine holds the defaults applied to every request. Query parameters
	// override AutoFix and Mode.
	Engine engine.Options

	// Registerer receives the component collectors. Nil keeps them
	// unregistered.
	Registerer prometheus.Registerer
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/validate",
		AutoFixParam: "autofix",
		ModeParam:    "mode",
		FormatParam:  "format",
		MaxBodyBytes: 1 << 20,
		CacheSize:    256,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/validate"
	}
	if opts.AutoFixParam == "" {
		opts.AutoFixParam = "autofix"
	}
	if opts.ModeParam == "" {
		opts.ModeParam = "mode"
	}
	if opts.FormatParam == "" {
		opts.FormatParam = "format"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.CacheSize < 0 {
		opts.CacheSize = 0
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

// WithCacheSize sets the number of cached reports. Zero disables caching.
func WithCacheSize(size int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CacheSize = size
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithEngineOptions(opts engine.Options) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Engine = opts
	}
}

func WithRegisterer(reg prometheus.Registerer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registerer = reg
	}
}
