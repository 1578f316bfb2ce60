package repositories

import (
	"context"
	"errors"

	"github.com/wayra-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DestinationRepository defines the interface for destination document operations
type DestinationRepository interface {
	CreateDestination(ctx context.Context, destination *models.Destination) error
	GetDestinationByID(ctx context.Context, id int) (*models.Destination, error)
	GetDestinationByName(ctx context.Context, name string) (*models.Destination, error)
	GetAllDestinations(ctx context.Context) ([]models.Destination, error)
	ReplaceDestination(ctx context.Context, destination *models.Destination) error
	DeleteDestination(ctx context.Context, id int) error
	NextDestinationID(ctx context.Context) (int, error)
}

// MongoDestinationRepository implements DestinationRepository for MongoDB
type MongoDestinationRepository struct {
	collection *mongo.Collection
}

// NewMongoDestinationRepository creates a new MongoDestinationRepository
func NewMongoDestinationRepository(db *mongo.Database) *MongoDestinationRepository {
	return &MongoDestinationRepository{collection: db.Collection("destinations")}
}

// CreateDestination inserts a new destination document into MongoDB
func (r *MongoDestinationRepository) CreateDestination(ctx context.Context, destination *models.Destination) error {
	_, err := r.collection.InsertOne(ctx, destination)
	return err
}

// GetDestinationByID retrieves a destination document by its id
func (r *MongoDestinationRepository) GetDestinationByID(ctx context.Context, id int) (*models.Destination, error) {
	var destination models.Destination
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&destination)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &destination, nil
}

// GetDestinationByName retrieves a destination document by its unique name
func (r *MongoDestinationRepository) GetDestinationByName(ctx context.Context, name string) (*models.Destination, error) {
	var destination models.Destination
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&destination)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &destination, nil
}

// GetAllDestinations retrieves every destination document from MongoDB
func (r *MongoDestinationRepository) GetAllDestinations(ctx context.Context) ([]models.Destination, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var destinations []models.Destination
	if err = cursor.All(ctx, &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

// ReplaceDestination rewrites the whole destination document, conditional on
// the version read with it. Same conflict semantics as ReplacePost.
func (r *MongoDestinationRepository) ReplaceDestination(ctx context.Context, destination *models.Destination) error {
	readVersion := destination.Version
	destination.Version = readVersion + 1

	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": destination.ID, "version": readVersion}, destination)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		destination.Version = readVersion
		count, err := r.collection.CountDocuments(ctx, bson.M{"id": destination.ID})
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrVersionConflict
		}
		return ErrNotFound
	}
	return nil
}

// DeleteDestination deletes a destination document by its id
func (r *MongoDestinationRepository) DeleteDestination(ctx context.Context, id int) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NextDestinationID returns the highest existing destination id plus one
func (r *MongoDestinationRepository) NextDestinationID(ctx context.Context) (int, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})

	var last models.Destination
	err := r.collection.FindOne(ctx, bson.D{}, findOptions).Decode(&last)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, err
	}
	return last.ID + 1, nil
}
