package http

import (
	"net/http"

	"movieapi/src/domain"
)

func (s *Server) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var request CreateDirectorRequest
	if err := decodeBody(w, r, &request); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.directorService.CreateDirector(r.Context(), domain.CreateDirectorRequest{
		Name:     request.Name,
		MovieIDs: request.Movie,
		Genre:    request.Genre,
		Year:     request.Year,
	})
	if err != nil {
		s.writeServiceError(w, r, "CreateDirector", err)
		return
	}

	s.logger.InfoContext(r.Context(), "Director created", "director_id", created.ID)

	s.writeJSON(w, http.StatusCreated, CreateDirectorResponse{
		Message:  domain.MessageDirectorSubmitted,
		Director: MapDirectorDocumentToResponse(created),
		Metadata: requestMetadata(r),
	})
}

func (s *Server) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	directorID := r.PathValue("id")
	if directorID == "" {
		s.writeErrorMessage(w, http.StatusBadRequest, "Director ID is required")
		return
	}

	var request UpdateDirectorRequest
	if err := decodeBody(w, r, &request); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.directorService.UpdateDirector(r.Context(), domain.UpdateDirectorRequest{
		ID:   directorID,
		Name: request.Name,
	})
	if err != nil {
		s.writeServiceError(w, r, "UpdateDirector", err)
		return
	}

	s.writeJSON(w, http.StatusOK, UpdateDirectorResponse{
		Message:  domain.MessageDirectorUpdated,
		Result:   MapPopulatedDirectorToResponse(updated),
		Metadata: requestMetadata(r),
	})
}

// DeleteDirector ignores any request body.
func (s *Server) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	directorID := r.PathValue("id")
	if directorID == "" {
		s.writeErrorMessage(w, http.StatusBadRequest, "Director ID is required")
		return
	}

	deleted, err := s.directorService.DeleteDirector(r.Context(), directorID)
	if err != nil {
		s.writeServiceError(w, r, "DeleteDirector", err)
		return
	}

	s.writeJSON(w, http.StatusOK, DeleteDirectorResponse{
		Message: domain.MessageDirectorDeleted,
		Result:  MapDirectorDocumentToResponse(deleted),
		Request: RequestHintDTO{
			Method: http.MethodGet,
			URL:    directorURL(r, deleted.ID),
		},
	})
}
