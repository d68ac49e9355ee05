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

const directorColumns = `id, name, movie_ids, genre, year, created_at, updated_at`

type PostgresDirectorRepository struct {
	client *postgres.ReadWriteClient
}

func NewPostgresDirectorRepository(client *postgres.ReadWriteClient) *PostgresDirectorRepository {
	return &PostgresDirectorRepository{client: client}
}

func scanDirector(row pgx.Row) (*entities.Director, error) {
	var director entities.Director
	err := row.Scan(
		&director.ID,
		&director.Name,
		&director.MovieIDs,
		&director.Genre,
		&director.Year,
		&director.CreatedAt,
		&director.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &director, nil
}

func (r *PostgresDirectorRepository) FindAll(ctx context.Context) ([]entities.Director, error) {
	rows, err := r.client.GetReadPool().Query(ctx, `SELECT `+directorColumns+` FROM directors ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("PostgresDirectorRepository.FindAll - query failed: %w", err)
	}
	defer rows.Close()

	directors := make([]entities.Director, 0)
	for rows.Next() {
		director, err := scanDirector(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresDirectorRepository.FindAll - scan failed: %w", err)
		}
		directors = append(directors, *director)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresDirectorRepository.FindAll - rows failed: %w", err)
	}

	return directors, nil
}

func (r *PostgresDirectorRepository) FindByID(ctx context.Context, id string) (*entities.Director, error) {
	row := r.client.GetReadPool().QueryRow(ctx, `SELECT `+directorColumns+` FROM directors WHERE id = $1`, id)

	director, err := scanDirector(row)
	if postgres.IsNoRows(err) {
		return nil, domain.ErrDirectorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("PostgresDirectorRepository.FindByID - query failed: %w", err)
	}
	return director, nil
}

func (r *PostgresDirectorRepository) Insert(ctx context.Context, director entities.Director) (*entities.Director, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO directors (id, name, movie_ids, genre, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + directorColumns

	row := r.client.GetWritePool().QueryRow(ctx, query,
		uuid.NewString(),
		director.Name,
		entities.NormalizeMovieIDs(director.MovieIDs),
		postgres.NewNullString(director.Genre),
		postgres.NewNullInt(director.Year),
		now,
	)

	created, err := scanDirector(row)
	if postgres.IsUniqueViolation(err) {
		return nil, domain.ErrDirectorDuplicated
	}
	if err != nil {
		return nil, fmt.Errorf("PostgresDirectorRepository.Insert - insert failed: %w", err)
	}
	return created, nil
}

func (r *PostgresDirectorRepository) UpdateName(ctx context.Context, id string, name string) (*entities.Director, error) {
	query := `
		UPDATE directors
		SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + directorColumns

	updated, err := scanDirector(r.client.GetWritePool().QueryRow(ctx, query, id, name))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrDirectorNotFound
	}
	if postgres.IsUniqueViolation(err) {
		return nil, domain.ErrDirectorDuplicated
	}
	if err != nil {
		return nil, fmt.Errorf("PostgresDirectorRepository.UpdateName - update failed: %w", err)
	}
	return updated, nil
}

func (r *PostgresDirectorRepository) DeleteByID(ctx context.Context, id string) (*entities.Director, error) {
	query := `DELETE FROM directors WHERE id = $1 RETURNING ` + directorColumns

	deleted, err := scanDirector(r.client.GetWritePool().QueryRow(ctx, query, id))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrDirectorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("PostgresDirectorRepository.DeleteByID - delete failed: %w", err)
	}
	return deleted, nil
}
