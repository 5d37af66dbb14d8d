package repositories

import (
	"context"
	"fmt"

	"github.com/koewave/koewave-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeRepository defines the interface for like ledger operations. All
// Work.like_count mutations go through ToggleLike; no other code path writes
// that counter.
type LikeRepository interface {
	ToggleLike(ctx context.Context, workID, userID string) (*models.LikeToggleResult, error)
	HasLiked(ctx context.Context, workID, userID string) (bool, error)
	GetLikedWorkIDs(ctx context.Context, userID string) ([]string, error)
}

// MongoLikeRepository implements LikeRepository over the "like_records" and
// "works" collections. Record and counter are written in one transaction;
// the count a caller sees is always recomputed from the freshly read
// documents, never from a client-supplied value.
type MongoLikeRepository struct {
	client  *mongo.Client
	records *mongo.Collection
	works   *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(client *mongo.Client, db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{
		client:  client,
		records: db.Collection("like_records"),
		works:   db.Collection("works"),
	}
}

// ToggleLike flips the caller's like on a work and adjusts the denormalized
// counter in the same transaction. Concurrent toggles serialize through the
// session transaction; the driver retries transient write conflicts.
func (r *MongoLikeRepository) ToggleLike(ctx context.Context, workID, userID string) (*models.LikeToggleResult, error) {
	objID, err := primitive.ObjectIDFromHex(workID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid work ID format", models.ErrValidation)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var work models.Work
		if err := r.works.FindOne(sc, bson.M{"_id": objID}).Decode(&work); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, fmt.Errorf("%w: work %s", models.ErrNotFound, workID)
			}
			return nil, err
		}

		record, err := r.loadRecord(sc, userID)
		if err != nil {
			return nil, err
		}

		liked := record.Toggle(workID)
		if liked {
			work.ApplyLikeDelta(1)
		} else {
			work.ApplyLikeDelta(-1)
		}

		opts := options.Replace().SetUpsert(true)
		if _, err := r.records.ReplaceOne(sc, bson.M{"_id": userID}, record, opts); err != nil {
			return nil, err
		}
		update := bson.M{"$set": bson.M{"like_count": work.LikeCount}}
		if _, err := r.works.UpdateOne(sc, bson.M{"_id": objID}, update); err != nil {
			return nil, err
		}

		return &models.LikeToggleResult{IsLiked: liked, NewLikeCount: work.LikeCount}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.LikeToggleResult), nil
}

// HasLiked reports whether the user currently likes the work
func (r *MongoLikeRepository) HasLiked(ctx context.Context, workID, userID string) (bool, error) {
	record, err := r.loadRecord(ctx, userID)
	if err != nil {
		return false, err
	}
	return record.HasLiked(workID), nil
}

// GetLikedWorkIDs returns the ids of all works the user has liked
func (r *MongoLikeRepository) GetLikedWorkIDs(ctx context.Context, userID string) ([]string, error) {
	record, err := r.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	return record.LikedWorkIDs, nil
}

// loadRecord fetches the per-user like record, returning an empty one when
// the user has never liked anything (records are created lazily).
func (r *MongoLikeRepository) loadRecord(ctx context.Context, userID string) (*models.LikeRecord, error) {
	var record models.LikeRecord
	err := r.records.FindOne(ctx, bson.M{"_id": userID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return models.NewLikeRecord(userID), nil
	}
	if err != nil {
		return nil, err
	}
	if record.LikedWorkIDs == nil {
		record.LikedWorkIDs = []string{}
	}
	return &record, nil
}
