package handler

import (
	"net/http"
	"strings"
)

var knownRoutes = map[string]struct{}{
	"/":                         {},
	"/api/v1/display":           {},
	"/api/v1/display/selection": {},
	"/api/v1/catalog":           {},
	"/health":                   {},
	"/ready":                    {},
	"/metrics":                  {},
}

// RouteLabel maps a request path to its route pattern for metrics labels.
// Unknown paths share one label.
func RouteLabel(r *http.Request) string {
	path := r.URL.Path
	if strings.HasPrefix(path, assetsPrefix) {
		return assetsPrefix + "*filepath"
	}
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return "other"
}
