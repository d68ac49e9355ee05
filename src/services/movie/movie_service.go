package movie

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"movieapi/src/domain"
	"movieapi/src/domain/entities"
	"movieapi/src/repositories"
)

type MovieService struct {
	movieRepository repositories.MovieRepository
}

func NewMovieService(movieRepository repositories.MovieRepository) *MovieService {
	return &MovieService{movieRepository: movieRepository}
}

func (ms *MovieService) ListMovies(ctx context.Context) ([]entities.Movie, error) {
	movies, err := ms.movieRepository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("MovieService.ListMovies - failed to FindAll from repository: %w", err)
	}
	return movies, nil
}

func (ms *MovieService) GetMovieByID(ctx context.Context, id string) (*entities.Movie, error) {
	movie, err := ms.movieRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("MovieService.GetMovieByID - failed to FindByID from repository: %w", err)
	}
	return movie, nil
}

func (ms *MovieService) CreateMovie(ctx context.Context, request domain.CreateMovieRequest) (*entities.Movie, error) {
	movie := entities.Movie{
		Title: strings.TrimSpace(request.Title),
		Year:  request.Year,
	}

	if movie.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidMovie)
	}
	if strings.ContainsFunc(movie.Title, unicode.IsControl) {
		return nil, fmt.Errorf("%w: title contains control characters", domain.ErrInvalidMovie)
	}
	if movie.Year != nil && (*movie.Year <= 0 || *movie.Year > math.MaxInt32) {
		return nil, fmt.Errorf("%w: year must be between 1 and %d", domain.ErrInvalidMovie, math.MaxInt32)
	}

	created, err := ms.movieRepository.Insert(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("MovieService.CreateMovie - failed to Insert into repository: %w", err)
	}
	return created, nil
}
