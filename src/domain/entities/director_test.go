package entities_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"movieapi/src/domain/entities"
)

var _ = Describe("Director", func() {
	Context("NormalizeMovieIDs", func() {
		When("ids have blanks, padding and repetitions", func() {
			It("returns the sorted set of trimmed ids", func() {
				// ACT
				result := entities.NormalizeMovieIDs([]string{" m2", "m1", "", "m2 ", "  "})

				// ASSERT
				Expect(result).To(Equal([]string{"m1", "m2"}))
			})
		})

		When("ids are nil", func() {
			It("returns an empty, non-nil slice", func() {
				result := entities.NormalizeMovieIDs(nil)

				Expect(result).NotTo(BeNil())
				Expect(result).To(BeEmpty())
			})
		})
	})

	Context("IdentityKey", func() {
		It("is the same for the same movie set in any order", func() {
			// ARRANGE
			first := entities.Director{Name: "Nolan", MovieIDs: []string{"m1", "m2"}}
			second := entities.Director{Name: "Nolan", MovieIDs: []string{"m2", "m1", "m1"}}

			// ASSERT
			Expect(first.IdentityKey()).To(Equal(second.IdentityKey()))
		})

		It("differs when the name differs", func() {
			first := entities.Director{Name: "Nolan", MovieIDs: []string{"m1"}}
			second := entities.Director{Name: "Villeneuve", MovieIDs: []string{"m1"}}

			Expect(first.IdentityKey()).NotTo(Equal(second.IdentityKey()))
		})

		It("keeps the name apart from the movie ids whatever characters they hold", func() {
			first := entities.Director{Name: "a\x00b", MovieIDs: []string{"c"}}
			second := entities.Director{Name: "a", MovieIDs: []string{"b", "c"}}
			third := entities.Director{Name: "a,b", MovieIDs: []string{"c"}}
			fourth := entities.Director{Name: "a", MovieIDs: []string{"b,c"}}

			Expect(first.IdentityKey()).NotTo(Equal(second.IdentityKey()))
			Expect(third.IdentityKey()).NotTo(Equal(second.IdentityKey()))
			Expect(fourth.IdentityKey()).NotTo(Equal(second.IdentityKey()))
			Expect(third.IdentityKey()).NotTo(Equal(fourth.IdentityKey()))
		})
	})
})
