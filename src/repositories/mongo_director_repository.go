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

type directorDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	MovieIDs    []string  `bson:"movie"`
	Genre       *string   `bson:"genre,omitempty"`
	Year        *int      `bson:"year,omitempty"`
	IdentityKey string    `bson:"identityKey"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d directorDocument) toEntity() entities.Director {
	return entities.Director{
		ID:        d.ID,
		Name:      d.Name,
		MovieIDs:  d.MovieIDs,
		Genre:     d.Genre,
		Year:      d.Year,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoDirectorRepository struct {
	collection *mongodriver.Collection
}

func NewMongoDirectorRepository(client *mongo.MongoClient) *MongoDirectorRepository {
	return &MongoDirectorRepository{collection: client.Collection(mongo.DirectorsCollection)}
}

func (r *MongoDirectorRepository) FindAll(ctx context.Context) ([]entities.Director, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("MongoDirectorRepository.FindAll - find failed: %w", err)
	}

	var documents []directorDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("MongoDirectorRepository.FindAll - decode failed: %w", err)
	}

	directors := make([]entities.Director, 0, len(documents))
	for _, document := range documents {
		directors = append(directors, document.toEntity())
	}
	return directors, nil
}

func (r *MongoDirectorRepository) FindByID(ctx context.Context, id string) (*entities.Director, error) {
	var document directorDocument
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&document)
	if mongo.IsNotFound(err) {
		return nil, domain.ErrDirectorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("MongoDirectorRepository.FindByID - find failed: %w", err)
	}

	director := document.toEntity()
	return &director, nil
}

func (r *MongoDirectorRepository) Insert(ctx context.Context, director entities.Director) (*entities.Director, error) {
	// Mongo guarda milissegundos; truncar aqui mantém o retorno igual ao que será lido depois.
	now := time.Now().UTC().Truncate(time.Millisecond)

	director.MovieIDs = entities.NormalizeMovieIDs(director.MovieIDs)
	document := directorDocument{
		ID:          mongo.NewID(),
		Name:        director.Name,
		MovieIDs:    director.MovieIDs,
		Genre:       director.Genre,
		Year:        director.Year,
		IdentityKey: director.IdentityKey(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.collection.InsertOne(ctx, document)
	if mongo.IsDuplicate(err) {
		return nil, domain.ErrDirectorDuplicated
	}
	if err != nil {
		return nil, fmt.Errorf("MongoDirectorRepository.Insert - insert failed: %w", err)
	}

	created := document.toEntity()
	return &created, nil
}

// UpdateName reads the current movies to rebuild identityKey. Movies never
// change after creation, so the read and the write can't disagree on them.
func (r *MongoDirectorRepository) UpdateName(ctx context.Context, id string, name string) (*entities.Director, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Name = name
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "identityKey", Value: current.IdentityKey()},
		{Key: "updatedAt", Value: time.Now().UTC().Truncate(time.Millisecond)},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var document directorDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&document)
	if mongo.IsNotFound(err) {
		return nil, domain.ErrDirectorNotFound
	}
	if mongo.IsDuplicate(err) {
		return nil, domain.ErrDirectorDuplicated
	}
	if err != nil {
		return nil, fmt.Errorf("MongoDirectorRepository.UpdateName - update failed: %w", err)
	}

	updated := document.toEntity()
	return &updated, nil
}

func (r *MongoDirectorRepository) DeleteByID(ctx context.Context, id string) (*entities.Director, error) {
	var document directorDocument
	err := r.collection.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&document)
	if mongo.IsNotFound(err) {
		return nil, domain.ErrDirectorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("MongoDirectorRepository.DeleteByID - delete failed: %w", err)
	}

	deleted := document.toEntity()
	return &deleted, nil
}
