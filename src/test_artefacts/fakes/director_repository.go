package fakes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"movieapi/src/domain"
	"movieapi/src/domain/entities"
)

// DirectorRepository is an in-memory repositories.DirectorRepository. It keeps
// the same uniqueness contract as the real stores.
type DirectorRepository struct {
	mu        sync.Mutex
	sequence  int
	directors map[string]entities.Director
	order     []string

	// Err, when set, is returned by every call.
	Err error
}

func NewDirectorRepository() *DirectorRepository {
	return &DirectorRepository{directors: make(map[string]entities.Director)}
}

func (r *DirectorRepository) FindAll(ctx context.Context) ([]entities.Director, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	directors := make([]entities.Director, 0, len(r.order))
	for _, id := range r.order {
		directors = append(directors, r.directors[id])
	}
	return directors, nil
}

func (r *DirectorRepository) FindByID(ctx context.Context, id string) (*entities.Director, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	director, ok := r.directors[id]
	if !ok {
		return nil, domain.ErrDirectorNotFound
	}
	return &director, nil
}

func (r *DirectorRepository) Insert(ctx context.Context, director entities.Director) (*entities.Director, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	director.MovieIDs = entities.NormalizeMovieIDs(director.MovieIDs)
	if r.identityTaken(director.IdentityKey(), "") {
		return nil, domain.ErrDirectorDuplicated
	}

	r.sequence++
	now := time.Now().UTC()
	director.ID = fmt.Sprintf("director-%d", r.sequence)
	director.CreatedAt = now
	director.UpdatedAt = now

	r.directors[director.ID] = director
	r.order = append(r.order, director.ID)
	return &director, nil
}

func (r *DirectorRepository) UpdateName(ctx context.Context, id string, name string) (*entities.Director, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	director, ok := r.directors[id]
	if !ok {
		return nil, domain.ErrDirectorNotFound
	}

	director.Name = name
	if r.identityTaken(director.IdentityKey(), id) {
		return nil, domain.ErrDirectorDuplicated
	}

	director.UpdatedAt = time.Now().UTC()
	r.directors[id] = director
	return &director, nil
}

func (r *DirectorRepository) DeleteByID(ctx context.Context, id string) (*entities.Director, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	director, ok := r.directors[id]
	if !ok {
		return nil, domain.ErrDirectorNotFound
	}

	delete(r.directors, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &director, nil
}

func (r *DirectorRepository) identityTaken(key string, exceptID string) bool {
	for id, existing := range r.directors {
		if id != exceptID && existing.IdentityKey() == key {
			return true
		}
	}
	return false
}
