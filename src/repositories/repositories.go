package repositories

import (
	"context"

	"movieapi/src/domain/entities"
)

// DirectorRepository is implemented by every store backend. Implementations
// translate driver errors into domain.ErrDirectorNotFound and
// domain.ErrDirectorDuplicated; anything else is returned wrapped.
type DirectorRepository interface {
	FindAll(ctx context.Context) ([]entities.Director, error)
	FindByID(ctx context.Context, id string) (*entities.Director, error)
	// Insert generates the id and timestamps. The (name, movie) uniqueness is
	// enforced by the store in the same round trip.
	Insert(ctx context.Context, director entities.Director) (*entities.Director, error)
	UpdateName(ctx context.Context, id string, name string) (*entities.Director, error)
	DeleteByID(ctx context.Context, id string) (*entities.Director, error)
}

type MovieRepository interface {
	FindAll(ctx context.Context) ([]entities.Movie, error)
	FindByID(ctx context.Context, id string) (*entities.Movie, error)
	FindByIDs(ctx context.Context, ids []string) ([]entities.Movie, error)
	Insert(ctx context.Context, movie entities.Movie) (*entities.Movie, error)
}
