package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/koewave/koewave-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WorkRepository defines the interface for work data operations. Counter
// fields are read here but only ever written by the like/comment
// repositories' transactions.
type WorkRepository interface {
	CreateWork(ctx context.Context, work *models.Work) error
	GetWorkByID(ctx context.Context, id string) (*models.Work, error)
	GetRecentWorksByUserID(ctx context.Context, userID string, limit int64) ([]models.Work, error)
	GetWorksByUserID(ctx context.Context, userID string, skip, limit int64) ([]models.Work, error)
	DeleteWork(ctx context.Context, id, requesterID string) error
}

// MongoWorkRepository implements WorkRepository for MongoDB
type MongoWorkRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkRepository creates a new MongoWorkRepository
func NewMongoWorkRepository(db *mongo.Database) *MongoWorkRepository {
	return &MongoWorkRepository{collection: db.Collection("works")}
}

// CreateWork inserts a new work with zeroed counters
func (r *MongoWorkRepository) CreateWork(ctx context.Context, work *models.Work) error {
	work.ID = primitive.NewObjectID()
	work.LikeCount = 0
	work.CommentCount = 0
	work.CreatedAt = time.Now()
	work.UpdatedAt = work.CreatedAt
	_, err := r.collection.InsertOne(ctx, work)
	return err
}

// GetWorkByID retrieves a work by ID
func (r *MongoWorkRepository) GetWorkByID(ctx context.Context, id string) (*models.Work, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid work ID format", models.ErrValidation)
	}

	var work models.Work
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&work)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: work %s", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &work, nil
}

// GetRecentWorksByUserID retrieves the author's most recent works, newest
// first. This is the per-author read the feed assembler fans out over.
func (r *MongoWorkRepository) GetRecentWorksByUserID(ctx context.Context, userID string, limit int64) ([]models.Work, error) {
	return r.GetWorksByUserID(ctx, userID, 0, limit)
}

// GetWorksByUserID retrieves works by a specific author with pagination
func (r *MongoWorkRepository) GetWorksByUserID(ctx context.Context, userID string, skip, limit int64) ([]models.Work, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	works := []models.Work{}
	if err = cursor.All(ctx, &works); err != nil {
		return nil, err
	}
	return works, nil
}

// DeleteWork deletes a work owned by the requester
func (r *MongoWorkRepository) DeleteWork(ctx context.Context, id, requesterID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid work ID format", models.ErrValidation)
	}

	var work models.Work
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&work); err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("%w: work %s", models.ErrNotFound, id)
		}
		return err
	}
	if work.UserID != requesterID {
		return fmt.Errorf("%w: not the work owner", models.ErrPermissionDenied)
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}
