package http_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	httpadapter "movieapi/src/adapters/http"
	"movieapi/src/domain"
	"movieapi/src/services/director"
	"movieapi/src/services/movie"
	"movieapi/src/test_artefacts/fakes"
)

var _ = Describe("Movie handlers", func() {
	var server *httpadapter.Server

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		movies := fakes.NewMovieRepository()
		server = httpadapter.NewServer(
			logger,
			0,
			director.NewDirectorService(logger, fakes.NewDirectorRepository(), movies, nil),
			movie.NewMovieService(movies),
			nil,
		)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, path, strings.NewReader(body))
		recorder := httptest.NewRecorder()
		server.Handler().ServeHTTP(recorder, request)
		return recorder
	}

	It("creates a movie that can be listed and fetched", func() {
		// ARRANGE
		recorder := do(http.MethodPost, "/movie", `{"title":"Inception","year":2010}`)
		Expect(recorder.Code).To(Equal(http.StatusCreated))

		var created httpadapter.MovieResponse
		Expect(json.Unmarshal(recorder.Body.Bytes(), &created)).To(Succeed())
		Expect(created.Movie.Title).To(Equal("Inception"))

		// ACT
		byID := do(http.MethodGet, "/movie/"+created.Movie.ID, "")
		list := do(http.MethodGet, "/movie", "")

		// ASSERT
		Expect(byID.Code).To(Equal(http.StatusOK))
		var fetched httpadapter.MovieResponse
		Expect(json.Unmarshal(byID.Body.Bytes(), &fetched)).To(Succeed())
		Expect(fetched.Movie.Year).To(HaveValue(Equal(2010)))

		Expect(list.Code).To(Equal(http.StatusOK))
		var listed httpadapter.MovieListResponse
		Expect(json.Unmarshal(list.Body.Bytes(), &listed)).To(Succeed())
		Expect(listed.Message).To(Equal(domain.MessageMovie))
		Expect(listed.MovieList).To(HaveLen(1))
	})

	It("returns not found for an unknown movie", func() {
		recorder := do(http.MethodGet, "/movie/nope", "")

		Expect(recorder.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects a movie without title", func() {
		recorder := do(http.MethodPost, "/movie", `{"year":2010}`)

		Expect(recorder.Code).To(Equal(http.StatusBadRequest))
	})

	It("reports the empty catalog", func() {
		recorder := do(http.MethodGet, "/movie", "")

		var listed httpadapter.MovieListResponse
		Expect(json.Unmarshal(recorder.Body.Bytes(), &listed)).To(Succeed())
		Expect(listed.Message).To(Equal(domain.MessageMovieEmpty))
	})
})
