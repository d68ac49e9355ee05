package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"movieapi/src/domain"
)

const maxBodyBytes = 1 << 20

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}

func (s *Server) writeErrorMessage(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: ErrorDTO{Message: message}})
}

// writeServiceError maps domain errors to statuses. Store errors keep the
// driver message, unwrapped from the service/repository context.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	switch {
	case errors.Is(err, domain.ErrDirectorNotFound):
		s.writeErrorMessage(w, http.StatusNotFound, domain.MessageDirectorNotFound)
	case errors.Is(err, domain.ErrMovieNotFound):
		s.writeErrorMessage(w, http.StatusNotFound, domain.MessageMovieNotFound)
	case errors.Is(err, domain.ErrDirectorDuplicated):
		s.writeErrorMessage(w, http.StatusConflict, domain.MessageDirectorPostDuplicate)
	case errors.Is(err, domain.ErrInvalidDirector), errors.Is(err, domain.ErrInvalidMovie):
		s.writeErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "Store operation failed",
			"operation", operation,
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		s.writeErrorMessage(w, http.StatusInternalServerError, rootCause(err).Error())
	}
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("Invalid request body: %w", err)
	}
	return nil
}

// hostname drops the port, like the request hostname of the old API did.
func hostname(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.Host)
	if err != nil {
		return r.Host
	}
	return host
}

func requestMetadata(r *http.Request) MetadataDTO {
	return MetadataDTO{
		Method: r.Method,
		Host:   hostname(r),
	}
}

func directorURL(r *http.Request, id string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/director/%s", scheme, r.Host, url.PathEscape(id))
}
