package entities

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// É o documento persistido para um diretor.
type Director struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Referências para Movie; sempre normalizadas (ver NormalizeMovieIDs).
	MovieIDs  []string  `json:"movie"`
	Genre     *string   `json:"genre,omitempty"`
	Year      *int      `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeMovieIDs trims, drops blanks, de-duplicates and sorts ids so the
// same set of movies always has the same representation in the store.
func NormalizeMovieIDs(ids []string) []string {
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		normalized = append(normalized, id)
	}

	slices.Sort(normalized)
	return slices.Compact(normalized)
}

// IdentityKey is the value the uniqueness invariant is enforced on: the JSON
// array [name, ids...], so no name or id content can shift the boundaries.
func (d Director) IdentityKey() string {
	parts := make([]string, 0, len(d.MovieIDs)+1)
	parts = append(parts, d.Name)
	parts = append(parts, NormalizeMovieIDs(d.MovieIDs)...)

	key, _ := json.Marshal(parts)
	return string(key)
}
