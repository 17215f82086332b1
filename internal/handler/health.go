package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/pkordes/travel-planner/spec"
)

// GetHealth handles GET /healthz.
// It pings every configured backing service and returns 200 with
// {"status":"ok"} when all respond, 503 with "degraded" otherwise.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	body := map[string]string{}
	for _, name := range names {
		body[name] = "ok"
		if err := s.checks[name].Ping(ctx); err != nil {
			s.log.ErrorContext(ctx, "health check failed", "check", name, "error", err)
			body[name] = "error"
			status = http.StatusServiceUnavailable
		}
	}

	body["status"] = "ok"
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	writeJSON(w, status, body)
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
