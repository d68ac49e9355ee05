package director

import (
	"context"
	"fmt"

	"movieapi/src/domain"
	"movieapi/src/domain/entities"
)

// ListDirectors returns every director with its movies expanded.
func (ds *DirectorService) ListDirectors(ctx context.Context) ([]*domain.PopulatedDirector, error) {
	directors, err := ds.directorRepository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("DirectorService.ListDirectors - failed to FindAll from repository: %w", err)
	}

	populated, err := ds.populate(ctx, directors)
	if err != nil {
		return nil, fmt.Errorf("DirectorService.ListDirectors - %w", err)
	}
	return populated, nil
}

// obtem o diretor pelo ID, com os filmes expandidos.
func (ds *DirectorService) GetDirectorByID(ctx context.Context, id string) (*domain.PopulatedDirector, error) {
	director, err := ds.directorRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("DirectorService.GetDirectorByID - failed to FindByID from repository: %w", err)
	}

	populated, err := ds.populate(ctx, []entities.Director{*director})
	if err != nil {
		return nil, fmt.Errorf("DirectorService.GetDirectorByID - %w", err)
	}
	return populated[0], nil
}

// populate replaces movie ids with {id, title}. A single FindByIDs call
// covers every director; ids that match no movie are dropped.
func (ds *DirectorService) populate(ctx context.Context, directors []entities.Director) ([]*domain.PopulatedDirector, error) {
	result := make([]*domain.PopulatedDirector, 0, len(directors))
	if len(directors) == 0 {
		return result, nil
	}

	var ids []string
	for _, director := range directors {
		ids = append(ids, director.MovieIDs...)
	}
	ids = entities.NormalizeMovieIDs(ids)

	movies, err := ds.movieRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to expand movies: %w", err)
	}

	titles := make(map[string]string, len(movies))
	for _, movie := range movies {
		titles[movie.ID] = movie.Title
	}

	for _, director := range directors {
		refs := make([]domain.MovieRef, 0, len(director.MovieIDs))
		for _, movieID := range director.MovieIDs {
			if title, ok := titles[movieID]; ok {
				refs = append(refs, domain.MovieRef{ID: movieID, Title: title})
			}
		}

		result = append(result, &domain.PopulatedDirector{
			Director: director,
			Movies:   refs,
		})
	}

	return result, nil
}
