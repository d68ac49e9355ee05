package entities

import "time"

// Movie is the target of a director's relation.
type Movie struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Year      *int      `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
