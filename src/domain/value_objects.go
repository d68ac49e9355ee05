package domain

import (
	"errors"
	"time"

	"movieapi/src/domain/entities"
)

var (
	ErrDirectorNotFound   = errors.New("director not found")
	ErrDirectorDuplicated = errors.New("director already exists for this movie")
	ErrInvalidDirector    = errors.New("invalid director")

	ErrMovieNotFound = errors.New("movie not found")
	ErrInvalidMovie  = errors.New("invalid movie")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ############### LEITURA (relation expansion) ###############
// ############################################################

// MovieRef is the expanded form of a movie reference inside a director.
type MovieRef struct {
	ID    string
	Title string
}

// PopulatedDirector is a director whose movie ids were replaced by
// the referenced movies. Ids without a matching movie are dropped.
type PopulatedDirector struct {
	entities.Director
	Movies []MovieRef
}

// ############################################################
// ###################### ESCRITA #############################
// ############################################################

// CreateDirectorRequest carries the fields accepted on creation.
type CreateDirectorRequest struct {
	Name     string
	MovieIDs []string
	Genre    *string
	Year     *int
}

// UpdateDirectorRequest only allows renaming.
type UpdateDirectorRequest struct {
	ID   string
	Name string
}

type CreateMovieRequest struct {
	Title string
	Year  *int
}

// ############################################################
// ###################### EVENTOS #############################
// ############################################################

const (
	EventDirectorCreated = "director.created"
	EventDirectorUpdated = "director.updated"
	EventDirectorDeleted = "director.deleted"
)

// PropertyChange holds the before/after value of a single field.
type PropertyChange struct {
	Old any `json:"old,omitempty"`
	New any `json:"new,omitempty"`
}

type DomainEventData struct {
	Reference  string                    `json:"reference"`
	Type       string                    `json:"type"`
	Properties map[string]PropertyChange `json:"properties"`
}

// DomainEvent is the payload published for every successful write.
type DomainEvent struct {
	OccurredAt time.Time       `json:"occurred_at"`
	Data       DomainEventData `json:"data"`
}
