package validator

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

var errNilMux = errors.New("validator: mux is nil")

// Mux is satisfied by *http.ServeMux and most third-party routers.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath reports where RegisterRoutes would mount the endpoint.
func MountPath(basePath string, fns ...OptionFn) string {
	return mountPath(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes builds a Component from fns and mounts it under basePath.
// The returned pattern is the one handed to mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", errNilMux
	}
	component, err := newComponent(opts)
	if err != nil {
		return "", err
	}
	return component.RegisterRoutes(mux, basePath)
}

// mountPath joins base and route into one rooted, cleaned path.
func mountPath(basePath, routePath string) string {
	return path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
}
