package test_seeder

import (
	"context"
	"fmt"

	"movieapi/src/domain/entities"
	"movieapi/src/infra/postgres"
)

// InsertMovie inserts a movie keeping the stub's id
func (ts TestSeeder) InsertMovie(ctx context.Context, movie *entities.Movie) {
	query := `
		INSERT INTO movies (id, title, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := ts.pool.Exec(ctx, query,
		movie.ID,
		movie.Title,
		postgres.NewNullInt(movie.Year),
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertMovie failed: %v", err))
	}
}

// InsertDirector inserts a director keeping the stub's id
func (ts TestSeeder) InsertDirector(ctx context.Context, director *entities.Director) {
	director.MovieIDs = entities.NormalizeMovieIDs(director.MovieIDs)

	query := `
		INSERT INTO directors (id, name, movie_ids, genre, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := ts.pool.Exec(ctx, query,
		director.ID,
		director.Name,
		director.MovieIDs,
		postgres.NewNullString(director.Genre),
		postgres.NewNullInt(director.Year),
		director.CreatedAt,
		director.UpdatedAt,
	)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertDirector failed: %v", err))
	}
}
