package repositories

import (
	"context"
	"errors"

	"github.com/wayra-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TripGoalRepository defines the interface for trip goal document operations
type TripGoalRepository interface {
	CreateTripGoal(ctx context.Context, tripGoal *models.TripGoal) error
	GetTripGoalByID(ctx context.Context, id int) (*models.TripGoal, error)
	GetTripGoalByUserID(ctx context.Context, userID uint) (*models.TripGoal, error)
	GetTripGoalsByIDs(ctx context.Context, ids []int) ([]models.TripGoal, error)
	ReplaceTripGoal(ctx context.Context, tripGoal *models.TripGoal) error
	DeleteTripGoal(ctx context.Context, id int) error
	NextTripGoalID(ctx context.Context) (int, error)
}

// MongoTripGoalRepository implements TripGoalRepository for MongoDB
type MongoTripGoalRepository struct {
	collection *mongo.Collection
}

// NewMongoTripGoalRepository creates a new MongoTripGoalRepository
func NewMongoTripGoalRepository(db *mongo.Database) *MongoTripGoalRepository {
	return &MongoTripGoalRepository{collection: db.Collection("tripGoals")}
}

// CreateTripGoal inserts a new trip goal document into MongoDB
func (r *MongoTripGoalRepository) CreateTripGoal(ctx context.Context, tripGoal *models.TripGoal) error {
	_, err := r.collection.InsertOne(ctx, tripGoal)
	return err
}

// GetTripGoalByID retrieves a trip goal document by its id
func (r *MongoTripGoalRepository) GetTripGoalByID(ctx context.Context, id int) (*models.TripGoal, error) {
	var tripGoal models.TripGoal
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&tripGoal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tripGoal, nil
}

// GetTripGoalByUserID retrieves the trip goal created by a specific user
func (r *MongoTripGoalRepository) GetTripGoalByUserID(ctx context.Context, userID uint) (*models.TripGoal, error) {
	var tripGoal models.TripGoal
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&tripGoal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tripGoal, nil
}

// GetTripGoalsByIDs retrieves all trip goals whose id is in ids
func (r *MongoTripGoalRepository) GetTripGoalsByIDs(ctx context.Context, ids []int) ([]models.TripGoal, error) {
	if len(ids) == 0 {
		return []models.TripGoal{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tripGoals []models.TripGoal
	if err = cursor.All(ctx, &tripGoals); err != nil {
		return nil, err
	}
	return tripGoals, nil
}

// ReplaceTripGoal rewrites the whole trip goal document. Follower queries go
// through the relational join table, so this write is last-writer-wins.
func (r *MongoTripGoalRepository) ReplaceTripGoal(ctx context.Context, tripGoal *models.TripGoal) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": tripGoal.ID}, tripGoal)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTripGoal deletes a trip goal document by its id
func (r *MongoTripGoalRepository) DeleteTripGoal(ctx context.Context, id int) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NextTripGoalID returns the highest existing trip goal id plus one
func (r *MongoTripGoalRepository) NextTripGoalID(ctx context.Context) (int, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})

	var last models.TripGoal
	err := r.collection.FindOne(ctx, bson.D{}, findOptions).Decode(&last)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, err
	}
	return last.ID + 1, nil
}
