package stubs

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"movieapi/src/domain/entities"
)

type DirectorStub struct {
	director entities.Director
}

func NewDirectorStub() DirectorStub {
	now := time.Now().UTC()
	genre := gofakeit.RandomString([]string{"drama", "thriller", "sci-fi", "comedy", "horror"})
	year := gofakeit.Number(1920, 2025)

	director := entities.Director{
		ID:        gofakeit.UUID(),
		Name:      gofakeit.Name(),
		MovieIDs:  []string{gofakeit.UUID()},
		Genre:     &genre,
		Year:      &year,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return DirectorStub{director: director}
}

func (ds DirectorStub) WithName(name string) DirectorStub {
	ds.director.Name = name
	return ds
}

func (ds DirectorStub) WithMovieIDs(ids ...string) DirectorStub {
	ds.director.MovieIDs = ids
	return ds
}

func (ds DirectorStub) WithoutOptionalFields() DirectorStub {
	ds.director.Genre = nil
	ds.director.Year = nil
	return ds
}

func (ds DirectorStub) Get() entities.Director {
	return ds.director
}
