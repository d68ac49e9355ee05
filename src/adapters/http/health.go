package http

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{Status: "ok", Checks: map[string]string{}}

	if s.healthChecker != nil {
		if err := ping(r.Context(), s.healthChecker); err != nil {
			s.logger.WarnContext(r.Context(), "Health check failed", "dependency", "store", "error", err)
			response.Checks["store"] = "unavailable"
			response.Status = "unavailable"
			s.writeJSON(w, http.StatusServiceUnavailable, response)
			return
		}
		response.Checks["store"] = "ok"
	}

	if s.cacheChecker != nil {
		if err := ping(r.Context(), s.cacheChecker); err != nil {
			s.logger.WarnContext(r.Context(), "Health check failed", "dependency", "cache", "error", err)
			response.Checks["cache"] = "unavailable"
			response.Status = "degraded"
		} else {
			response.Checks["cache"] = "ok"
		}
	}

	s.writeJSON(w, http.StatusOK, response)
}

func ping(ctx context.Context, checker HealthChecker) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return checker.Ping(ctx)
}
