package director

import (
	"context"
	"log/slog"

	"movieapi/src/repositories"
	"movieapi/src/services/events"
)

// EventPublisher is satisfied by *events.DomainEventPublisher.
type EventPublisher interface {
	PublishSingleEvent(ctx context.Context, event events.DomainEventWithMetadata) error
}

type DirectorService struct {
	logger             *slog.Logger
	directorRepository repositories.DirectorRepository
	movieRepository    repositories.MovieRepository
	publisher          EventPublisher
}

// NewDirectorService builds the service. publisher may be nil, in which case
// no domain events are emitted.
func NewDirectorService(
	logger *slog.Logger,
	directorRepository repositories.DirectorRepository,
	movieRepository repositories.MovieRepository,
	publisher EventPublisher,
) *DirectorService {
	return &DirectorService{
		logger:             logger,
		directorRepository: directorRepository,
		movieRepository:    movieRepository,
		publisher:          publisher,
	}
}
