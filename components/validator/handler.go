package validator

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formcheck/pkg/engine"
	"github.com/goliatone/go-formcheck/pkg/render"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type handler struct {
	opts      Options
	metrics   *Metrics
	cache     *reportCache
	renderers *render.Registry
	now       func() time.Time
}

// NewHandler builds a net/http handler with default options plus any
// overrides.
func NewHandler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) (http.Handler, error) {
	h, err := newHandler(opts)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func newHandler(opts Options) (*handler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })

	metrics, err := NewMetrics(opts.Registerer)
	if err != nil {
		return nil, fmt.Errorf("validator: register metrics: %w", err)
	}
	cache, err := newReportCache(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("validator: create cache: %w", err)
	}
	renderers, err := render.NewDefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("validator: renderers: %w", err)
	}
	return &handler{
		opts:      opts,
		metrics:   metrics,
		cache:     cache,
		renderers: renderers,
		now:       time.Now,
	}, nil
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			h.metrics.observeOutcome("rejected")
			writeError(w, err, http.StatusForbidden)
			return
		}
	}

	engineOpts, format, err := h.requestOptions(r)
	if err != nil {
		h.metrics.observeOutcome("rejected")
		writeError(w, err, http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
	if err != nil {
		h.metrics.observeOutcome("rejected")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, err, http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		h.metrics.observeOutcome("rejected")
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: errors.New("request body is empty")}, http.StatusBadRequest)
		return
	}

	report := h.validate(body, engineOpts)

	renderer, err := h.renderers.Get(format)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	out, err := renderer.Render(r.Context(), report, render.Options{IncludeDocument: engineOpts.AutoFix})
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	if report.IsValid {
		h.metrics.observeOutcome("valid")
	} else {
		h.metrics.observeOutcome("invalid")
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("X-Formcheck-Score", strconv.Itoa(report.Score))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (h *handler) validate(body []byte, opts engine.Options) engine.Report {
	key := cacheKey(body, opts)
	if report, ok := h.cache.get(key); ok {
		h.metrics.observeCache(true)
		return report
	}
	if h.cache != nil {
		h.metrics.observeCache(false)
	}

	started := h.now()
	report := engine.ValidateBytes(body, opts)
	h.metrics.duration.Observe(h.now().Sub(started).Seconds())
	h.metrics.score.Observe(float64(report.Score))

	h.cache.add(key, report)
	return report
}

func (h *handler) requestOptions(r *http.Request) (engine.Options, render.Format, error) {
	opts := h.opts.Engine
	query := r.URL.Query()

	if raw := query.Get(h.opts.AutoFixParam); raw != "" {
		autoFix, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, "", StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("invalid %s value %q", h.opts.AutoFixParam, raw)}
		}
		opts.AutoFix = autoFix
	}
	if raw := query.Get(h.opts.ModeParam); raw != "" {
		mode, err := engine.ParseMode(raw)
		if err != nil {
			return opts, "", StatusError{Code: http.StatusBadRequest, Err: err}
		}
		opts.Mode = mode
	}

	raw := query.Get(h.opts.FormatParam)
	if raw == "" {
		return opts, render.FormatJSON, nil
	}
	format, err := render.ParseFormat(raw)
	if err != nil {
		return opts, "", StatusError{Code: http.StatusBadRequest, Err: err}
	}
	return opts, format, nil
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	msg := http.StatusText(code)
	if err != nil && code < http.StatusInternalServerError {
		msg = err.Error()
	}
	http.Error(w, msg, code)
}
