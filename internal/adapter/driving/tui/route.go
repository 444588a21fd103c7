package tui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Screen names a top-level view.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenRepository
)

const repositoryPrefix = "/repository/"

// ErrInvalidRoute is returned by ParseRoute for paths that match no screen.
var ErrInvalidRoute = errors.New("invalid route")

// Route is a location in the app. Identifier is set only for ScreenRepository.
type Route struct {
	Screen     Screen
	Identifier string
}

// DashboardRoute is the root route.
func DashboardRoute() Route {
	return Route{Screen: ScreenDashboard}
}

// RepositoryRoute is the detail route for identifier ("owner/name").
func RepositoryRoute(identifier string) Route {
	return Route{Screen: ScreenRepository, Identifier: identifier}
}

// ParseRoute parses "/" or "/repository/{identifier}". The identifier may be
// URL-encoded ("facebook%2Freact") or raw ("facebook/react").
func ParseRoute(path string) (Route, error) {
	if path == "" || path == "/" {
		return DashboardRoute(), nil
	}

	rest, ok := strings.CutPrefix(path, repositoryPrefix)
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrInvalidRoute, path)
	}

	identifier, err := url.PathUnescape(rest)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %q: %w", ErrInvalidRoute, path, err)
	}
	if identifier == "" {
		return Route{}, fmt.Errorf("%w: %q has no repository identifier", ErrInvalidRoute, path)
	}

	return RepositoryRoute(identifier), nil
}

// Path renders the route in its canonical, URL-encoded form.
func (r Route) Path() string {
	if r.Screen == ScreenRepository {
		return repositoryPrefix + url.PathEscape(r.Identifier)
	}
	return "/"
}
