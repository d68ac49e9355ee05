package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/fx"

	httpadapter "movieapi/src/adapters/http"
	"movieapi/src/helper/env"
	"movieapi/src/infra/kafka"
	"movieapi/src/infra/mongo"
	"movieapi/src/infra/postgres"
	"movieapi/src/infra/redis"
	"movieapi/src/repositories"
	"movieapi/src/services/director"
	"movieapi/src/services/events"
	"movieapi/src/services/movie"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting movie catalog API with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newStore,
			newRedisClient,
			newKafkaClient,
			newEventPublisher,
			newDirectorRepository,
			newDirectorService,
			newMovieService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerInfraHooks, registerServerHooks),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application: %v", err)
	}
}

func newLogger() *slog.Logger {
	var level slog.Level

	switch env.GetString("LOG_LEVEL", "info") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// store agrupa os repositórios do backend escolhido em STORE_DRIVER.
type store struct {
	directors repositories.DirectorRepository
	movies    repositories.MovieRepository
	health    httpadapter.HealthChecker
	close     func(ctx context.Context) error
}

func newStore(logger *slog.Logger) (*store, error) {
	driver := env.GetString("STORE_DRIVER", "postgres")
	logger.Info("Configuring store", "driver", driver)

	switch driver {
	case "postgres":
		return newPostgresStore()
	case "mongo":
		return newMongoStore()
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (expected postgres or mongo)", driver)
	}
}

func newPostgresStore() (*store, error) {
	client, err := postgres.NewReadWriteClientFromConfig(postgres.ConfigFromEnv())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.EnsureSchema(ctx, client.GetWritePool()); err != nil {
		client.Close()
		return nil, err
	}

	return &store{
		directors: repositories.NewPostgresDirectorRepository(client),
		movies:    repositories.NewPostgresMovieRepository(client),
		health:    client,
		close: func(context.Context) error {
			client.Close()
			return nil
		},
	}, nil
}

func newMongoStore() (*store, error) {
	uri := env.MustGetString("MONGO_URI")
	database := env.GetString("MONGO_DATABASE", "movies")
	maxPoolSize := env.GetInt("MONGO_MAX_POOL_SIZE", 25)

	client, err := mongo.NewMongoClient(uri, database, maxPoolSize)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := client.EnsureIndexes(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}

	return &store{
		directors: repositories.NewMongoDirectorRepository(client),
		movies:    repositories.NewMongoMovieRepository(client),
		health:    client,
		close:     client.Close,
	}, nil
}

// newRedisClient returns nil when REDIS_HOSTS is empty, which disables the cache.
func newRedisClient() *redis.RedisClient {
	redisAddrs := env.GetString("REDIS_HOSTS", "")
	if redisAddrs == "" {
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 10)
	redisTTL := env.GetDuration("REDIS_TTL_SECONDS", 300*time.Second)

	return redis.NewRedisClient(redisAddrs, redisPoolSize, redisTTL)
}

// newKafkaClient returns nil when KAFKA_BROKERS is empty, which disables events.
func newKafkaClient() (*kafka.KafkaClient, error) {
	brokers := env.GetString("KAFKA_BROKERS", "")
	if brokers == "" {
		return nil, nil
	}
	return kafka.NewKafkaClient(brokers)
}

func newEventPublisher(logger *slog.Logger, kafkaClient *kafka.KafkaClient) director.EventPublisher {
	if kafkaClient == nil {
		return nil
	}

	topic := env.GetString("KAFKA_DIRECTOR_TOPIC", "director-events")
	return events.NewDomainEventPublisher(logger, kafkaClient, topic)
}

func newDirectorRepository(s *store, redisClient *redis.RedisClient) repositories.DirectorRepository {
	return repositories.NewCachedDirectorRepository(s.directors, redisClient)
}

func newDirectorService(
	logger *slog.Logger,
	directorRepository repositories.DirectorRepository,
	s *store,
	publisher director.EventPublisher,
) *director.DirectorService {
	return director.NewDirectorService(logger, directorRepository, s.movies, publisher)
}

func newMovieService(s *store) *movie.MovieService {
	return movie.NewMovieService(s.movies)
}

func newServer(
	logger *slog.Logger,
	directorService *director.DirectorService,
	movieService *movie.MovieService,
	s *store,
	redisClient *redis.RedisClient,
) *httpadapter.Server {

	port := 8888 // default value
	if portStr := os.Getenv("SERVER_ADDR"); portStr != "" {
		if val, err := strconv.Atoi(portStr); err == nil {
			port = val
		}
	}

	server := httpadapter.NewServer(logger, port, directorService, movieService, s.health)
	if redisClient != nil {
		server.WithCacheChecker(redisClient)
	}
	return server
}

// registerInfraHooks closes store, cache and producer on shutdown.
func registerInfraHooks(lc fx.Lifecycle, s *store, redisClient *redis.RedisClient, kafkaClient *kafka.KafkaClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if kafkaClient != nil {
				if err := kafkaClient.Close(); err != nil {
					log.Printf("Failed to close kafka client: %v", err)
				}
			}
			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					log.Printf("Failed to close redis client: %v", err)
				}
			}
			return s.close(ctx)
		},
	})
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *httpadapter.Server, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Printf("Server failed: %v", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}
