package repositories_test

import (
	. "github.com/onsi/ginkgo/v2"

	"movieapi/src/repositories"
	"movieapi/src/test_artefacts/fakes"
)

// Os fakes usados nos testes de serviço precisam cumprir o mesmo contrato.
var _ = Describe("In-memory fakes", func() {
	directorRepositoryContract(func() repositories.DirectorRepository {
		return fakes.NewDirectorRepository()
	})

	movieRepositoryContract(func() repositories.MovieRepository {
		return fakes.NewMovieRepository()
	})
})
