package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.uber.org/fx"

	"movieapi/src/adapters/kafka/consumers"
	"movieapi/src/helper/env"
	"movieapi/src/infra/debezium"
	"movieapi/src/infra/kafka"
	"movieapi/src/infra/redis"
	"movieapi/src/repositories"
)

// Consome o CDC da tabela directors e remove do redis os diretores alterados
// fora da API (datagen, SQL manual, outros serviços).
func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting director cache invalidator with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newRedisClient,
			newKafkaConsumer,
			newCDCClient,
			newCacheInvalidator,
			newDirectorCacheConsumer,
		),

		// Invocations
		fx.Invoke(startConsumer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start director cache invalidator: %v", err)
	}

	<-app.Done()

	log.Println("Shutting down director cache invalidator...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}

	log.Println("Director cache invalidator shutdown complete")
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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func newRedisClient() *redis.RedisClient {
	redisAddrs := env.MustGetString("REDIS_HOSTS")
	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 10)
	redisTTL := env.GetDuration("REDIS_TTL_SECONDS", 300*time.Second)

	return redis.NewRedisClient(redisAddrs, redisPoolSize, redisTTL)
}

func newKafkaConsumer() (*kafka.KafkaConsumer, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")
	groupID := env.GetString("KAFKA_CDC_CONSUMER_GROUP_ID", "director-cache-invalidator")
	batchSize := env.GetInt("KAFKA_BATCH_SIZE", 100)

	return kafka.NewKafkaConsumer(brokers, groupID, batchSize)
}

func newCDCClient(logger *slog.Logger, consumer *kafka.KafkaConsumer) *debezium.CDCClient {
	topic := env.MustGetString("KAFKA_CDC_TOPIC")
	serializer := &debezium.CDCSerializer{
		IncludeTables: env.GetStringSlice("KAFKA_CDC_TABLES"),
		SkipSnapshots: env.GetBool("KAFKA_CDC_SKIP_SNAPSHOTS", true),
	}
	if len(serializer.IncludeTables) == 0 {
		serializer.IncludeTables = []string{"directors"}
	}

	return debezium.NewCDCClient(logger, topic, consumer, serializer)
}

// Só a parte de cache do repositório é usada; o store por trás fica nil.
func newCacheInvalidator(redisClient *redis.RedisClient) consumers.DirectorCacheInvalidator {
	return repositories.NewCachedDirectorRepository(nil, redisClient)
}

func newDirectorCacheConsumer(
	logger *slog.Logger,
	cdcClient *debezium.CDCClient,
	invalidator consumers.DirectorCacheInvalidator,
) *consumers.DirectorCacheConsumer {
	return consumers.NewDirectorCacheConsumer(logger, cdcClient, invalidator)
}

func startConsumer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	consumer *consumers.DirectorCacheConsumer,
	redisClient *redis.RedisClient,
	shutdowner fx.Shutdowner,
) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := consumer.Start(ctx); err != nil {
					logger.Error("Director cache consumer failed", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()

			if err := consumer.Close(); err != nil {
				logger.Error("Failed to close director cache consumer", "error", err)
			}
			if err := redisClient.Close(); err != nil {
				logger.Error("Failed to close redis client", "error", err)
			}
			logger.Info("Director cache consumer shut down gracefully")
			return nil
		},
	})
}
