package test_seeder

import (
	"context"
	"fmt"
)

// CountDirectors returns how many rows the directors table holds
func (ts TestSeeder) CountDirectors(ctx context.Context) int {
	var count int
	if err := ts.pool.QueryRow(ctx, `SELECT COUNT(*) FROM directors`).Scan(&count); err != nil {
		panic(fmt.Sprintf("Seeder.CountDirectors failed: %v", err))
	}
	return count
}
