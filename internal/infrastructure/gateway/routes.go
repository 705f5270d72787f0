// Package gateway forwards /api/v1 traffic to the backend services and applies
// the edge concerns: CORS, secure headers and rate limits.
package gateway

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Route sends every request whose path starts with Prefix to Upstream.
type Route struct {
	Name     string `yaml:"name"`
	Prefix   string `yaml:"prefix"`
	Upstream string `yaml:"upstream"`
}

// RouteTable is the on-disk form of the gateway routes.
type RouteTable struct {
	Routes []Route `yaml:"routes"`
}

// Upstreams holds the backend base URLs used by DefaultRoutes.
type Upstreams struct {
	Auth         string
	Users        string
	TradeSignals string
}

// DefaultRoutes maps the four public prefixes onto the three services.
func DefaultRoutes(u Upstreams) []Route {
	return []Route{
		{Name: "auth", Prefix: "/api/v1/auth", Upstream: u.Auth},
		{Name: "users", Prefix: "/api/v1/users", Upstream: u.Users},
		{Name: "trade-signals", Prefix: "/api/v1/trade-signals", Upstream: u.TradeSignals},
		{Name: "discussions", Prefix: "/api/v1/discussions", Upstream: u.TradeSignals},
	}
}

// LoadRoutes reads a YAML route table from path.
func LoadRoutes(path string) ([]Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route table: %w", err)
	}

	var table RouteTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}
	if err := Validate(table.Routes); err != nil {
		return nil, err
	}
	return table.Routes, nil
}

// Validate checks that every route has a unique absolute prefix and a
// parseable http(s) upstream.
func Validate(routes []Route) error {
	if len(routes) == 0 {
		return fmt.Errorf("route table is empty")
	}

	seen := make(map[string]bool, len(routes))
	for i, r := range routes {
		if !strings.HasPrefix(r.Prefix, "/") {
			return fmt.Errorf("route %d: prefix %q must start with /", i, r.Prefix)
		}
		if seen[r.Prefix] {
			return fmt.Errorf("route %d: duplicate prefix %q", i, r.Prefix)
		}
		seen[r.Prefix] = true

		u, err := url.Parse(r.Upstream)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("route %d: invalid upstream %q", i, r.Upstream)
		}
	}
	return nil
}
