//go:build datagen_directors
// +build datagen_directors

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"movieapi/src/domain/entities"
	"movieapi/src/infra/postgres"
)

type DataBundle struct {
	Director entities.Director
	Movies   []entities.Movie
}

var genres = []string{"drama", "thriller", "sci-fi", "comedy", "horror", "documentary", "animation"}

// Same DB_* variables as the API; always writes to the primary.
func newSQLClient() (*pgxpool.Pool, error) {
	return postgres.NewWriteClientFromConfig(postgres.ConfigFromEnv())
}

func main() {
	numDirectors := flag.Int("directors", 1000, "Número de diretores a serem criados. Use -1 para infinito.")
	moviesPerDirector := flag.Int("movies-per-director", 3, "Filmes gerados para cada diretor")
	bulkSize := flag.Int("bulk-size", 500, "Diretores por COPY")
	numConsumers := flag.Int("consumers", 4, "Workers gravando no banco")
	flag.Parse()

	if *moviesPerDirector < 1 {
		log.Fatalf("movies-per-director must be at least 1")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := newSQLClient()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	dataChan := make(chan DataBundle, (*bulkSize)*(*numConsumers)*2)

	var wg sync.WaitGroup
	var totalProcessed, totalErrors int64
	startTime := time.Now()

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				processed := atomic.LoadInt64(&totalProcessed)
				elapsed := time.Since(startTime)
				fmt.Printf("📊 Directors: %d | Errors: %d | Rate: %.1f/s | Elapsed: %v\n",
					processed, atomic.LoadInt64(&totalErrors), float64(processed)/elapsed.Seconds(), elapsed.Round(time.Second))
			}
		}
	}()

	for i := 0; i < *numConsumers; i++ {
		wg.Add(1)
		go consumer(ctx, &wg, db, dataChan, *bulkSize, i+1, &totalProcessed, &totalErrors)
	}

	wg.Add(1)
	go producer(ctx, &wg, dataChan, *numDirectors, *moviesPerDirector)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Shutdown signal received, stopping...")
		cancel()
	}()

	wg.Wait()

	elapsed := time.Since(startTime)
	processed := atomic.LoadInt64(&totalProcessed)

	fmt.Printf("\n🏁 Seeding finished!\n")
	fmt.Printf("📊 Total directors: %d\n", processed)
	fmt.Printf("❌ Total errors: %d\n", atomic.LoadInt64(&totalErrors))
	fmt.Printf("⏱️  Total time: %v\n", elapsed.Round(time.Second))
}

func producer(ctx context.Context, wg *sync.WaitGroup, dataChan chan<- DataBundle, numDirectors, moviesPerDirector int) {
	defer wg.Done()
	defer close(dataChan)

	isInfinite := numDirectors == -1
	for count := 0; isInfinite || count < numDirectors; count++ {
		select {
		case dataChan <- generateBundle(moviesPerDirector):
			if (count+1)%1000 == 0 {
				fmt.Printf("Generated %d directors\n", count+1)
			}
		case <-ctx.Done():
			fmt.Println("Producer stopping.")
			return
		}
	}
}

// generateBundle cria filmes novos para cada diretor, então o par
// (name, movie_ids) nunca colide com o que já está no banco.
func generateBundle(moviesPerDirector int) DataBundle {
	now := time.Now().UTC()

	movies := make([]entities.Movie, 0, moviesPerDirector)
	movieIDs := make([]string, 0, moviesPerDirector)
	for i := 0; i < moviesPerDirector; i++ {
		year := 1930 + rand.Intn(96)
		movie := entities.Movie{
			ID:        faker.UUIDHyphenated(),
			Title:     faker.Sentence(),
			Year:      &year,
			CreatedAt: now,
			UpdatedAt: now,
		}
		movies = append(movies, movie)
		movieIDs = append(movieIDs, movie.ID)
	}

	director := entities.Director{
		ID:        faker.UUIDHyphenated(),
		Name:      faker.Name(),
		MovieIDs:  entities.NormalizeMovieIDs(movieIDs),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Metade dos diretores sem atributos opcionais.
	if rand.Intn(2) == 0 {
		genre := genres[rand.Intn(len(genres))]
		year := 1900 + rand.Intn(100)
		director.Genre = &genre
		director.Year = &year
	}

	return DataBundle{Director: director, Movies: movies}
}

func consumer(ctx context.Context, wg *sync.WaitGroup, db *pgxpool.Pool, dataChan <-chan DataBundle, bulkSize, consumerID int, totalProcessed, totalErrors *int64) {
	defer wg.Done()
	log.Printf("🚀 Consumer %d started", consumerID)

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	bundles := make([]DataBundle, 0, bulkSize)

	flush := func(reason string) {
		if len(bundles) == 0 {
			return
		}
		if err := bulkInsert(ctx, db, bundles); err != nil {
			log.Printf("❌ Consumer %d: ERROR on %s: %v", consumerID, reason, err)
			atomic.AddInt64(totalErrors, 1)
		} else {
			atomic.AddInt64(totalProcessed, int64(len(bundles)))
		}
		bundles = make([]DataBundle, 0, bulkSize)
	}

	for {
		select {
		case bundle, ok := <-dataChan:
			if !ok {
				flush("final flush")
				log.Printf("✅ Consumer %d stopping.", consumerID)
				return
			}

			bundles = append(bundles, bundle)
			if len(bundles) >= bulkSize {
				flush("bulk insert")
			}

		case <-ticker.C:
			flush("ticker flush")

		case <-ctx.Done():
			log.Printf("🛑 Consumer %d received stop signal.", consumerID)
			return
		}
	}
}

// bulkInsert grava filmes antes dos diretores na mesma transação.
func bulkInsert(ctx context.Context, db *pgxpool.Pool, bundles []DataBundle) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	movieRows := make([][]any, 0, len(bundles))
	directorRows := make([][]any, 0, len(bundles))
	for _, bundle := range bundles {
		for _, movie := range bundle.Movies {
			movieRows = append(movieRows, []any{movie.ID, movie.Title, movie.Year, movie.CreatedAt, movie.UpdatedAt})
		}

		director := bundle.Director
		directorRows = append(directorRows, []any{
			director.ID, director.Name, director.MovieIDs, director.Genre, director.Year, director.CreatedAt, director.UpdatedAt,
		})
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"movies"},
		[]string{"id", "title", "year", "created_at", "updated_at"},
		pgx.CopyFromRows(movieRows),
	); err != nil {
		return fmt.Errorf("failed to copy movies: %w", err)
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"directors"},
		[]string{"id", "name", "movie_ids", "genre", "year", "created_at", "updated_at"},
		pgx.CopyFromRows(directorRows),
	); err != nil {
		return fmt.Errorf("failed to copy directors: %w", err)
	}

	return tx.Commit(ctx)
}
