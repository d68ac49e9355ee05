package fakes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"movieapi/src/domain"
	"movieapi/src/domain/entities"
)

// MovieRepository is an in-memory repositories.MovieRepository. Movies are
// seeded with Add so tests control their ids.
type MovieRepository struct {
	mu       sync.Mutex
	sequence int
	movies   map[string]entities.Movie
	order    []string

	Err error
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{movies: make(map[string]entities.Movie)}
}

// Add stores the movie under its own id.
func (r *MovieRepository) Add(movies ...entities.Movie) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, movie := range movies {
		if _, exists := r.movies[movie.ID]; !exists {
			r.order = append(r.order, movie.ID)
		}
		r.movies[movie.ID] = movie
	}
}

func (r *MovieRepository) FindAll(ctx context.Context) ([]entities.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	movies := make([]entities.Movie, 0, len(r.order))
	for _, id := range r.order {
		movies = append(movies, r.movies[id])
	}
	return movies, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (*entities.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	movie, ok := r.movies[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return &movie, nil
}

func (r *MovieRepository) FindByIDs(ctx context.Context, ids []string) ([]entities.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	movies := make([]entities.Movie, 0, len(ids))
	for _, id := range ids {
		if movie, ok := r.movies[id]; ok {
			movies = append(movies, movie)
		}
	}
	return movies, nil
}

func (r *MovieRepository) Insert(ctx context.Context, movie entities.Movie) (*entities.Movie, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	r.mu.Lock()
	r.sequence++
	now := time.Now().UTC()
	movie.ID = fmt.Sprintf("movie-%d", r.sequence)
	movie.CreatedAt = now
	movie.UpdatedAt = now
	r.mu.Unlock()

	r.Add(movie)
	return &movie, nil
}
