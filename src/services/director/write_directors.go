package director

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"movieapi/src/domain"
	"movieapi/src/domain/entities"
	"movieapi/src/services/events"
)

// year é INTEGER no Postgres.
const maxYear = math.MaxInt32

// CreateDirector validates and inserts a director. A repeated (name, movie)
// pair comes back as domain.ErrDirectorDuplicated from the store.
func (ds *DirectorService) CreateDirector(ctx context.Context, request domain.CreateDirectorRequest) (*entities.Director, error) {
	director := entities.Director{
		Name:     strings.TrimSpace(request.Name),
		MovieIDs: entities.NormalizeMovieIDs(request.MovieIDs),
		Genre:    normalizeGenre(request.Genre),
		Year:     request.Year,
	}

	if director.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidDirector)
	}
	if hasControlCharacters(director.Name) {
		return nil, fmt.Errorf("%w: name contains control characters", domain.ErrInvalidDirector)
	}
	if len(director.MovieIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one movie is required", domain.ErrInvalidDirector)
	}
	if slices.ContainsFunc(director.MovieIDs, hasControlCharacters) {
		return nil, fmt.Errorf("%w: movie id contains control characters", domain.ErrInvalidDirector)
	}
	if director.Genre != nil && hasControlCharacters(*director.Genre) {
		return nil, fmt.Errorf("%w: genre contains control characters", domain.ErrInvalidDirector)
	}
	if director.Year != nil && (*director.Year <= 0 || *director.Year > maxYear) {
		return nil, fmt.Errorf("%w: year must be between 1 and %d", domain.ErrInvalidDirector, maxYear)
	}

	created, err := ds.directorRepository.Insert(ctx, director)
	if err != nil {
		return nil, fmt.Errorf("DirectorService.CreateDirector - failed to Insert into repository: %w", err)
	}

	properties := map[string]domain.PropertyChange{
		"name":  {New: created.Name},
		"movie": {New: created.MovieIDs},
	}
	if created.Genre != nil {
		properties["genre"] = domain.PropertyChange{New: *created.Genre}
	}
	if created.Year != nil {
		properties["year"] = domain.PropertyChange{New: *created.Year}
	}
	ds.publish(ctx, domain.EventDirectorCreated, created.ID, properties)

	return created, nil
}

// UpdateDirector renames a director and returns the stored document with
// movies expanded.
func (ds *DirectorService) UpdateDirector(ctx context.Context, request domain.UpdateDirectorRequest) (*domain.PopulatedDirector, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidDirector)
	}
	if hasControlCharacters(name) {
		return nil, fmt.Errorf("%w: name contains control characters", domain.ErrInvalidDirector)
	}

	updated, err := ds.directorRepository.UpdateName(ctx, request.ID, name)
	if err != nil {
		return nil, fmt.Errorf("DirectorService.UpdateDirector - failed to UpdateName in repository: %w", err)
	}

	ds.publish(ctx, domain.EventDirectorUpdated, updated.ID, map[string]domain.PropertyChange{
		"name": {New: updated.Name},
	})

	populated, err := ds.populate(ctx, []entities.Director{*updated})
	if err != nil {
		return nil, fmt.Errorf("DirectorService.UpdateDirector - %w", err)
	}
	return populated[0], nil
}

// DeleteDirector removes a director and returns the deleted document.
func (ds *DirectorService) DeleteDirector(ctx context.Context, id string) (*entities.Director, error) {
	deleted, err := ds.directorRepository.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("DirectorService.DeleteDirector - failed to DeleteByID from repository: %w", err)
	}

	ds.publish(ctx, domain.EventDirectorDeleted, deleted.ID, map[string]domain.PropertyChange{
		"name":  {Old: deleted.Name},
		"movie": {Old: deleted.MovieIDs},
	})

	return deleted, nil
}

// Postgres TEXT rejects NUL, so control characters are refused up front for
// every store.
func hasControlCharacters(value string) bool {
	return strings.ContainsFunc(value, unicode.IsControl)
}

// A blank genre is stored as absent.
func normalizeGenre(genre *string) *string {
	if genre == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*genre)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// publish never fails the request: the write is already committed.
func (ds *DirectorService) publish(ctx context.Context, eventType string, reference string, properties map[string]domain.PropertyChange) {
	if ds.publisher == nil {
		return
	}

	event := events.DomainEventWithMetadata{
		DomainEvent: domain.DomainEvent{
			OccurredAt: time.Now().UTC(),
			Data: domain.DomainEventData{
				Reference:  reference,
				Type:       "director",
				Properties: properties,
			},
		},
		EventID:   uuid.NewString(),
		EventType: eventType,
	}

	if err := ds.publisher.PublishSingleEvent(ctx, event); err != nil {
		ds.logger.WarnContext(ctx, "Failed to publish director event",
			"error", err,
			"event_type", eventType,
			"director_id", reference)
	}
}
