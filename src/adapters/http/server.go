package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"movieapi/src/services/director"
	"movieapi/src/services/movie"
)

// HealthChecker reports whether the store behind the API is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server representa o servidor HTTP da API
type Server struct {
	logger          *slog.Logger
	server          *http.Server
	mux             *http.ServeMux
	port            int
	directorService *director.DirectorService
	movieService    *movie.MovieService
	healthChecker   HealthChecker
	cacheChecker    HealthChecker
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	directorService *director.DirectorService,
	movieService *movie.MovieService,
	healthChecker HealthChecker,
) *Server {
	server := &Server{
		mux:             http.NewServeMux(),
		port:            port,
		logger:          logger,
		directorService: directorService,
		movieService:    movieService,
		healthChecker:   healthChecker,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Director
	server.mux.HandleFunc("GET /director", server.GetDirectors)
	server.mux.HandleFunc("GET /director/{id}", server.GetDirectorByID)
	server.mux.HandleFunc("POST /director", server.CreateDirector)
	server.mux.HandleFunc("PATCH /director/{id}", server.UpdateDirector)
	server.mux.HandleFunc("DELETE /director/{id}", server.DeleteDirector)

	// Movie
	server.mux.HandleFunc("GET /movie", server.GetMovies)
	server.mux.HandleFunc("GET /movie/{id}", server.GetMovieByID)
	server.mux.HandleFunc("POST /movie", server.CreateMovie)

	server.mux.HandleFunc("GET /health", server.Health)

	return server
}

// WithCacheChecker adds the cache to /health. The API keeps serving from the
// store when the cache is down, so a failing cache only degrades the report.
func (s *Server) WithCacheChecker(checker HealthChecker) *Server {
	s.cacheChecker = checker
	return s
}

// Handler exposes the routing table, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
