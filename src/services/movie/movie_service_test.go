package movie_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"movieapi/src/domain"
	"movieapi/src/domain/entities"
	"movieapi/src/services/movie"
	"movieapi/src/test_artefacts/fakes"
	"movieapi/src/test_artefacts/stubs"
)

var _ = Describe("MovieService", func() {
	var (
		ctx     context.Context
		movies  *fakes.MovieRepository
		service *movie.MovieService
	)

	BeforeEach(func() {
		ctx = context.Background()
		movies = fakes.NewMovieRepository()
		service = movie.NewMovieService(movies)
	})

	Context("CreateMovie", func() {
		It("stores the trimmed title", func() {
			// ARRANGE
			year := 2010

			// ACT
			created, err := service.CreateMovie(ctx, domain.CreateMovieRequest{Title: " Inception ", Year: &year})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.Title).To(Equal("Inception"))

			fetched, err := service.GetMovieByID(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.Year).To(HaveValue(Equal(2010)))
		})

		It("rejects a blank title", func() {
			_, err := service.CreateMovie(ctx, domain.CreateMovieRequest{Title: "  "})

			Expect(err).To(MatchError(domain.ErrInvalidMovie))
		})

		It("rejects a negative year", func() {
			year := -1

			_, err := service.CreateMovie(ctx, domain.CreateMovieRequest{Title: "Tenet", Year: &year})

			Expect(err).To(MatchError(domain.ErrInvalidMovie))
		})

		It("rejects a year the year column can't hold", func() {
			year := math.MaxInt32 + 1

			_, err := service.CreateMovie(ctx, domain.CreateMovieRequest{Title: "Tenet", Year: &year})

			Expect(err).To(MatchError(domain.ErrInvalidMovie))
		})

		It("rejects a title with control characters", func() {
			_, err := service.CreateMovie(ctx, domain.CreateMovieRequest{Title: "Ten\x00et"})

			Expect(err).To(MatchError(domain.ErrInvalidMovie))
			Expect(movies.FindAll(ctx)).To(BeEmpty())
		})
	})

	Context("GetMovieByID", func() {
		It("returns not found for an unknown id", func() {
			_, err := service.GetMovieByID(ctx, "nope")

			Expect(err).To(MatchError(domain.ErrMovieNotFound))
		})
	})

	Context("ListMovies", func() {
		It("returns the seeded movies in insertion order", func() {
			first := stubs.NewMovieStub().WithID("m1").Get()
			second := stubs.NewMovieStub().WithID("m2").Get()
			movies.Add(first, second)

			result, err := service.ListMovies(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal([]entities.Movie{first, second}))
		})

		It("wraps store failures", func() {
			storeErr := errors.New("connection reset")
			movies.Err = storeErr

			_, err := service.ListMovies(ctx)

			Expect(err).To(MatchError(storeErr))
			Expect(err.Error()).To(HavePrefix("MovieService.ListMovies"))
		})
	})
})
