package http

import (
	"net/http"

	"movieapi/src/domain"
)

func (s *Server) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.movieService.ListMovies(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "ListMovies", err)
		return
	}

	response := MovieListResponse{
		Message:   domain.MessageMovie,
		MovieList: make([]*MovieDTO, 0, len(movies)),
	}
	if len(movies) == 0 {
		response.Message = domain.MessageMovieEmpty
	}
	for i := range movies {
		response.MovieList = append(response.MovieList, MapMovieToResponse(&movies[i]))
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := s.movieService.GetMovieByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, "GetMovieByID", err)
		return
	}

	s.writeJSON(w, http.StatusOK, MovieResponse{
		Message: domain.MessageMovieFound,
		Movie:   MapMovieToResponse(movie),
	})
}

func (s *Server) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var request CreateMovieRequest
	if err := decodeBody(w, r, &request); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.movieService.CreateMovie(r.Context(), domain.CreateMovieRequest{
		Title: request.Title,
		Year:  request.Year,
	})
	if err != nil {
		s.writeServiceError(w, r, "CreateMovie", err)
		return
	}

	s.writeJSON(w, http.StatusCreated, MovieResponse{
		Message: domain.MessageMovieSubmitted,
		Movie:   MapMovieToResponse(created),
	})
}
