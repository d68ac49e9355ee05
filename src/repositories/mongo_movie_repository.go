package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"movieapi/src/domain"
	"movieapi/src/domain/entities"
	"movieapi/src/infra/mongo"
)

type movieDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Year      *int      `bson:"year,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d movieDocument) toEntity() entities.Movie {
	return entities.Movie{
		ID:        d.ID,
		Title:     d.Title,
		Year:      d.Year,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoMovieRepository struct {
	collection *mongodriver.Collection
}

func NewMongoMovieRepository(client *mongo.MongoClient) *MongoMovieRepository {
	return &MongoMovieRepository{collection: client.Collection(mongo.MoviesCollection)}
}

func (r *MongoMovieRepository) find(ctx context.Context, filter bson.D) ([]entities.Movie, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var documents []movieDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, err
	}

	movies := make([]entities.Movie, 0, len(documents))
	for _, document := range documents {
		movies = append(movies, document.toEntity())
	}
	return movies, nil
}

func (r *MongoMovieRepository) FindAll(ctx context.Context) ([]entities.Movie, error) {
	movies, err := r.find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("MongoMovieRepository.FindAll - find failed: %w", err)
	}
	return movies, nil
}

func (r *MongoMovieRepository) FindByID(ctx context.Context, id string) (*entities.Movie, error) {
	var document movieDocument
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&document)
	if mongo.IsNotFound(err) {
		return nil, domain.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("MongoMovieRepository.FindByID - find failed: %w", err)
	}

	movie := document.toEntity()
	return &movie, nil
}

func (r *MongoMovieRepository) FindByIDs(ctx context.Context, ids []string) ([]entities.Movie, error) {
	if len(ids) == 0 {
		return []entities.Movie{}, nil
	}

	movies, err := r.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, fmt.Errorf("MongoMovieRepository.FindByIDs - find failed: %w", err)
	}
	return movies, nil
}

func (r *MongoMovieRepository) Insert(ctx context.Context, movie entities.Movie) (*entities.Movie, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	document := movieDocument{
		ID:        mongo.NewID(),
		Title:     movie.Title,
		Year:      movie.Year,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, document); err != nil {
		return nil, fmt.Errorf("MongoMovieRepository.Insert - insert failed: %w", err)
	}

	created := document.toEntity()
	return &created, nil
}
