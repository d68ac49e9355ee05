package consumers

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"movieapi/src/infra/debezium"
)

// DirectorCacheInvalidator is satisfied by *repositories.CachedDirectorRepository.
type DirectorCacheInvalidator interface {
	InvalidateDirectors(ctx context.Context, ids []string) error
}

// CDCSource is satisfied by *debezium.CDCClient.
type CDCSource interface {
	ConsumeCDCEventsBatch(ctx context.Context, handler debezium.CDCBatchEventHandler) error
	Close() error
}

// DirectorCacheConsumer evicts cached directors when their rows change in
// the database, including writes that never went through the API.
type DirectorCacheConsumer struct {
	logger      *slog.Logger
	cdcSource   CDCSource
	invalidator DirectorCacheInvalidator
}

func NewDirectorCacheConsumer(
	logger *slog.Logger,
	cdcSource CDCSource,
	invalidator DirectorCacheInvalidator,
) *DirectorCacheConsumer {
	return &DirectorCacheConsumer{
		logger:      logger,
		cdcSource:   cdcSource,
		invalidator: invalidator,
	}
}

func (c *DirectorCacheConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting director cache consumer")
	return c.cdcSource.ConsumeCDCEventsBatch(ctx, c.HandleCDCEvents)
}

// HandleCDCEvents invalidates every director touched by the batch with a
// single call. Events without an id are skipped.
func (c *DirectorCacheConsumer) HandleCDCEvents(ctx context.Context, cdcEvents []*debezium.CDCEvent) error {
	ids := make([]string, 0, len(cdcEvents))
	for _, cdcEvent := range cdcEvents {
		id, ok := cdcEvent.StringField("id")
		if !ok {
			c.logger.WarnContext(ctx, "CDC event without director id",
				"table", cdcEvent.Source.Table,
				"operation", cdcEvent.Operation)
			continue
		}
		ids = append(ids, id)
	}

	slices.Sort(ids)
	ids = slices.Compact(ids)
	if len(ids) == 0 {
		return nil
	}

	if err := c.invalidator.InvalidateDirectors(ctx, ids); err != nil {
		return fmt.Errorf("DirectorCacheConsumer.HandleCDCEvents - failed to invalidate %d directors: %w", len(ids), err)
	}

	c.logger.DebugContext(ctx, "Invalidated cached directors", "count", len(ids))
	return nil
}

func (c *DirectorCacheConsumer) Close() error {
	c.logger.Info("Closing director cache consumer")
	return c.cdcSource.Close()
}
