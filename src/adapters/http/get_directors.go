package http

import (
	"net/http"

	"movieapi/src/domain"
)

func (s *Server) GetDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := s.directorService.ListDirectors(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "ListDirectors", err)
		return
	}

	response := DirectorListResponse{
		Message:      domain.MessageDirector,
		DirectorList: make([]*DirectorDTO, 0, len(directors)),
	}
	if len(directors) == 0 {
		response.Message = domain.MessageDirectorEmpty
	}

	for _, director := range directors {
		response.DirectorList = append(response.DirectorList, MapPopulatedDirectorToResponse(director))
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) GetDirectorByID(w http.ResponseWriter, r *http.Request) {
	directorID := r.PathValue("id")
	if directorID == "" {
		s.writeErrorMessage(w, http.StatusBadRequest, "Director ID is required")
		return
	}

	director, err := s.directorService.GetDirectorByID(r.Context(), directorID)
	if err != nil {
		s.writeServiceError(w, r, "GetDirectorByID", err)
		return
	}

	s.writeJSON(w, http.StatusOK, DirectorResponse{
		Message:  domain.MessageDirectorFound,
		Director: MapPopulatedDirectorToResponse(director),
	})
}
