package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"movieapi/src/domain"
	"movieapi/src/domain/entities"
	"movieapi/src/infra/postgres"
)

const movieColumns = `id, title, year, created_at, updated_at`

type PostgresMovieRepository struct {
	client *postgres.ReadWriteClient
}

func NewPostgresMovieRepository(client *postgres.ReadWriteClient) *PostgresMovieRepository {
	return &PostgresMovieRepository{client: client}
}

func scanMovie(row pgx.Row) (*entities.Movie, error) {
	var movie entities.Movie
	if err := row.Scan(&movie.ID, &movie.Title, &movie.Year, &movie.CreatedAt, &movie.UpdatedAt); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *PostgresMovieRepository) collect(rows pgx.Rows) ([]entities.Movie, error) {
	defer rows.Close()

	movies := make([]entities.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}
	return movies, rows.Err()
}

func (r *PostgresMovieRepository) FindAll(ctx context.Context) ([]entities.Movie, error) {
	rows, err := r.client.GetReadPool().Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("PostgresMovieRepository.FindAll - query failed: %w", err)
	}

	movies, err := r.collect(rows)
	if err != nil {
		return nil, fmt.Errorf("PostgresMovieRepository.FindAll - scan failed: %w", err)
	}
	return movies, nil
}

func (r *PostgresMovieRepository) FindByID(ctx context.Context, id string) (*entities.Movie, error) {
	movie, err := scanMovie(r.client.GetReadPool().QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("PostgresMovieRepository.FindByID - query failed: %w", err)
	}
	return movie, nil
}

func (r *PostgresMovieRepository) FindByIDs(ctx context.Context, ids []string) ([]entities.Movie, error) {
	if len(ids) == 0 {
		return []entities.Movie{}, nil
	}

	rows, err := r.client.GetReadPool().Query(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("PostgresMovieRepository.FindByIDs - query failed: %w", err)
	}

	movies, err := r.collect(rows)
	if err != nil {
		return nil, fmt.Errorf("PostgresMovieRepository.FindByIDs - scan failed: %w", err)
	}
	return movies, nil
}

func (r *PostgresMovieRepository) Insert(ctx context.Context, movie entities.Movie) (*entities.Movie, error) {
	query := `
		INSERT INTO movies (id, title, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + movieColumns

	created, err := scanMovie(r.client.GetWritePool().QueryRow(ctx, query,
		uuid.NewString(),
		movie.Title,
		postgres.NewNullInt(movie.Year),
		time.Now().UTC(),
	))
	if err != nil {
		return nil, fmt.Errorf("PostgresMovieRepository.Insert - insert failed: %w", err)
	}
	return created, nil
}
