package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"movieapi/src/domain/entities"
	"movieapi/src/infra/redis"
)

const cacheOperationTimeout = 500 * time.Millisecond

// CachedDirectorRepository is a read-through cache for FindByID in front of
// any DirectorRepository. Writes go straight to the store and invalidate the
// cached document. A nil redis client turns the cache off.
type CachedDirectorRepository struct {
	directorRepository DirectorRepository
	redisClient        *redis.RedisClient
}

func NewCachedDirectorRepository(
	directorRepository DirectorRepository,
	redisClient *redis.RedisClient,
) *CachedDirectorRepository {
	return &CachedDirectorRepository{
		directorRepository: directorRepository,
		redisClient:        redisClient,
	}
}

func directorCacheKey(id string) string {
	return fmt.Sprintf("director:%s", id)
}

func (r *CachedDirectorRepository) FindAll(ctx context.Context) ([]entities.Director, error) {
	return r.directorRepository.FindAll(ctx)
}

func (r *CachedDirectorRepository) FindByID(ctx context.Context, id string) (*entities.Director, error) {
	if r.redisClient == nil {
		return r.directorRepository.FindByID(ctx, id)
	}

	cacheKey := directorCacheKey(id)

	cached, found, err := r.getFromCache(ctx, cacheKey)
	if found && err == nil {
		return cached, nil
	}

	if err != nil {
		// Log erro de cache mas continua com o store
		log.Printf("Cache error for key %s: %v", cacheKey, err)
	}

	director, err := r.directorRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.setInCache(ctx, cacheKey, director)
	return director, nil
}

func (r *CachedDirectorRepository) Insert(ctx context.Context, director entities.Director) (*entities.Director, error) {
	return r.directorRepository.Insert(ctx, director)
}

func (r *CachedDirectorRepository) UpdateName(ctx context.Context, id string, name string) (*entities.Director, error) {
	updated, err := r.directorRepository.UpdateName(ctx, id, name)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, id)
	return updated, nil
}

func (r *CachedDirectorRepository) DeleteByID(ctx context.Context, id string) (*entities.Director, error) {
	deleted, err := r.directorRepository.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, id)
	return deleted, nil
}

// InvalidateDirectors drops cached documents for ids changed outside this
// process. Unlike the write paths it reports the redis error so the caller
// can retry.
func (r *CachedDirectorRepository) InvalidateDirectors(ctx context.Context, ids []string) error {
	if r.redisClient == nil || len(ids) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, directorCacheKey(id))
	}

	ctx, cancel := context.WithTimeout(ctx, cacheOperationTimeout)
	defer cancel()

	if err := r.redisClient.InvalidateKeys(ctx, keys); err != nil {
		return fmt.Errorf("CachedDirectorRepository.InvalidateDirectors - %w", err)
	}
	return nil
}

func (r *CachedDirectorRepository) getFromCache(ctx context.Context, cacheKey string) (*entities.Director, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheOperationTimeout)
	defer cancel()

	cachedJSON, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if !found || err != nil {
		return nil, found, err
	}

	var director entities.Director
	if err := json.Unmarshal([]byte(cachedJSON), &director); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached director: %w", err)
	}

	return &director, true, nil
}

func (r *CachedDirectorRepository) setInCache(ctx context.Context, cacheKey string, director *entities.Director) {
	dataJSON, err := json.Marshal(director)
	if err != nil {
		log.Printf("Failed to marshal cache data for key %s: %v", cacheKey, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheOperationTimeout)
	defer cancel()

	// Não sobrescreve um marcador de invalidação: o documento lido pode ser
	// anterior à escrita que o invalidou.
	if _, err := r.redisClient.SetKeyIfAbsent(ctx, cacheKey, string(dataJSON)); err != nil {
		log.Printf("Failed to set cache for key %s: %v", cacheKey, err)
	}
}

func (r *CachedDirectorRepository) invalidate(ctx context.Context, id string) {
	if r.redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheOperationTimeout)
	defer cancel()

	if err := r.redisClient.InvalidateKeys(ctx, []string{directorCacheKey(id)}); err != nil {
		log.Printf("Failed to invalidate cache for director %s: %v", id, err)
	}
}
