package repositories

import (
	"context"
	"errors"

	"github.com/wayra-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostRepository defines the interface for post document operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id int) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	ReplacePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id int) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost inserts a new post document into MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post document by its id
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves every post document from MongoDB
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ReplacePost rewrites the whole post document. The write is conditional on
// the version read with the document; a concurrent writer advancing it first
// makes this call fail with ErrVersionConflict instead of silently dropping
// the earlier change.
func (r *MongoPostRepository) ReplacePost(ctx context.Context, post *models.Post) error {
	readVersion := post.Version
	post.Version = readVersion + 1

	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": post.ID, "version": readVersion}, post)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		post.Version = readVersion
		if exists, err := r.exists(ctx, post.ID); err != nil {
			return err
		} else if exists {
			return ErrVersionConflict
		}
		return ErrNotFound
	}
	return nil
}

// DeletePost deletes a post document by its id
func (r *MongoPostRepository) DeletePost(ctx context.Context, id int) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) exists(ctx context.Context, id int) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
