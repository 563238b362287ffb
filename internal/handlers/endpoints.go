package handlers

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
)

type EndpointsResponse struct {
	Success   bool     `json:"success"`
	Endpoints []string `json:"endpoints"`
}

// Endpoints returns a handler that lists every registered route, serving as
// live documentation of the API surface.
func Endpoints(r chi.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var routes []string
		_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			routes = append(routes, method+" "+route)
			return nil
		})
		sort.Strings(routes)
		writeJSON(w, http.StatusOK, EndpointsResponse{Success: true, Endpoints: routes})
	}
}
