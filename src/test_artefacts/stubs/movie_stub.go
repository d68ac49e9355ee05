package stubs

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"movieapi/src/domain/entities"
)

type MovieStub struct {
	movie entities.Movie
}

func NewMovieStub() MovieStub {
	now := time.Now().UTC()
	year := gofakeit.Number(1920, 2025)

	movie := entities.Movie{
		ID:        gofakeit.UUID(),
		Title:     gofakeit.Sentence(3),
		Year:      &year,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return MovieStub{movie: movie}
}

func (ms MovieStub) WithID(id string) MovieStub {
	ms.movie.ID = id
	return ms
}

func (ms MovieStub) WithTitle(title string) MovieStub {
	ms.movie.Title = title
	return ms
}

func (ms MovieStub) Get() entities.Movie {
	return ms.movie
}
