package repositories_test

import (
	"github.com/google/go-cmp/cmp"

	"movieapi/src/test_artefacts/comparer"
)

// Stores round timestamps, so documents are compared with a small tolerance.
func comparerOptions() []cmp.Option {
	return []cmp.Option{
		comparer.TimeWithinTolerance(1),
		comparer.EmptySlicesEqual(),
	}
}
