package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/admin"); got != "/admin/api/validate" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("admin"); got != "/admin/api/validate" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/admin/", WithRoutePath("forms/check")); got != "/admin/forms/check" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	for base, want := range map[string]string{
		"":            "/api/validate",
		"/":           "/api/validate",
		" //tools// ": "/tools/api/validate",
	} {
		if got := MountPath(base); got != want {
			t.Fatalf("MountPath(%q) = %q, want %q", base, got, want)
		}
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/tools")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/tools/api/validate" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodPost, pattern, strings.NewReader(selectForm))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); !errors.Is(err, errNilMux) {
		t.Fatalf("expected errNilMux, got %v", err)
	}
	var c *Component
	if _, err := c.RegisterRoutes(http.NewServeMux(), "/"); err == nil {
		t.Fatalf("expected error for nil component")
	}
}

func TestComponent_SharesCache(t *testing.T) {
	c, err := New(WithRoutePath("/check"), WithCacheSize(4))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Options().RoutePath != "/check" {
		t.Fatalf("unexpected options: %+v", c.Options())
	}

	mux := http.NewServeMux()
	pattern, err := c.RegisterRoutes(mux, "")
	if err != nil || pattern != "/check" {
		t.Fatalf("RegisterRoutes() = %q, %v", pattern, err)
	}

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, pattern, strings.NewReader(selectForm))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	}
	if n := c.CachedReports(); n != 1 {
		t.Fatalf("cached reports = %d, want 1", n)
	}
}

func TestNewOptions_Clamps(t *testing.T) {
	opts := NewOptions(WithRoutePath(""), WithMaxBodyBytes(-1), WithCacheSize(-5))
	if opts.RoutePath != "/api/validate" || opts.MaxBodyBytes != 1<<20 || opts.CacheSize != 0 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
