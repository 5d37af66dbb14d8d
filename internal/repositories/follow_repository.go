package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/koewave/koewave-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FollowRepository defines the interface for follow graph operations. It is
// the only writer of the follower/following documents and their counters.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, targetID string) error
	Unfollow(ctx context.Context, followerID, targetID string) error
	GetFollowStatus(ctx context.Context, viewerID, otherID string) (*models.FollowStatus, error)
	GetStats(ctx context.Context, userID string) (*models.FollowStats, error)
	GetFollowerIDs(ctx context.Context, userID string, limit int) ([]string, error)
	GetFollowingIDs(ctx context.Context, userID string, limit int) ([]string, error)
}

// MongoFollowRepository implements FollowRepository over two MongoDB
// collections keyed by user id: "followers" and "following". Both sides of
// an edge are written in one transaction so the symmetry invariant holds.
type MongoFollowRepository struct {
	client    *mongo.Client
	followers *mongo.Collection
	following *mongo.Collection
}

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(client *mongo.Client, db *mongo.Database) *MongoFollowRepository {
	return &MongoFollowRepository{
		client:    client,
		followers: db.Collection("followers"),
		following: db.Collection("following"),
	}
}

// Follow adds targetID to the follower's following set and followerID to the
// target's followers set atomically. Re-following an existing edge is a
// no-op; the counters never double-increment.
func (r *MongoFollowRepository) Follow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return fmt.Errorf("%w: cannot follow yourself", models.ErrInvalidOperation)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		following, err := r.loadDoc(sc, r.following, followerID)
		if err != nil {
			return nil, err
		}
		if !following.Add(targetID) {
			// Edge already exists; leave both sides untouched.
			return nil, nil
		}

		followers, err := r.loadDoc(sc, r.followers, targetID)
		if err != nil {
			return nil, err
		}
		followers.Add(followerID)

		if err := r.saveDoc(sc, r.following, following); err != nil {
			return nil, err
		}
		if err := r.saveDoc(sc, r.followers, followers); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// Unfollow removes the edge from both sides atomically. Removing an edge
// that does not exist is a no-op, not an error.
func (r *MongoFollowRepository) Unfollow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return fmt.Errorf("%w: cannot unfollow yourself", models.ErrInvalidOperation)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		following, err := r.loadDoc(sc, r.following, followerID)
		if err != nil {
			return nil, err
		}
		if !following.Remove(targetID) {
			return nil, nil
		}

		followers, err := r.loadDoc(sc, r.followers, targetID)
		if err != nil {
			return nil, err
		}
		followers.Remove(followerID)

		if err := r.saveDoc(sc, r.following, following); err != nil {
			return nil, err
		}
		if err := r.saveDoc(sc, r.followers, followers); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// GetFollowStatus resolves the relationship between viewer and other with
// two point reads; no transaction is needed for a read-only check.
func (r *MongoFollowRepository) GetFollowStatus(ctx context.Context, viewerID, otherID string) (*models.FollowStatus, error) {
	following, err := r.loadDoc(ctx, r.following, viewerID)
	if err != nil {
		return nil, err
	}
	followers, err := r.loadDoc(ctx, r.followers, viewerID)
	if err != nil {
		return nil, err
	}

	status := &models.FollowStatus{
		IsFollowing: following.Has(otherID),
		IsFollower:  followers.Has(otherID),
	}
	status.IsMutual = status.IsFollowing && status.IsFollower
	return status, nil
}

// GetStats returns the denormalized follower/following counts
func (r *MongoFollowRepository) GetStats(ctx context.Context, userID string) (*models.FollowStats, error) {
	followers, err := r.loadDoc(ctx, r.followers, userID)
	if err != nil {
		return nil, err
	}
	following, err := r.loadDoc(ctx, r.following, userID)
	if err != nil {
		return nil, err
	}
	return &models.FollowStats{
		FollowerCount:  followers.Count,
		FollowingCount: following.Count,
	}, nil
}

// GetFollowerIDs returns up to limit follower ids in stored (arrival) order
func (r *MongoFollowRepository) GetFollowerIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	return r.memberIDs(ctx, r.followers, userID, limit)
}

// GetFollowingIDs returns up to limit followed-user ids in stored order
func (r *MongoFollowRepository) GetFollowingIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	return r.memberIDs(ctx, r.following, userID, limit)
}

func (r *MongoFollowRepository) memberIDs(ctx context.Context, coll *mongo.Collection, userID string, limit int) ([]string, error) {
	doc, err := r.loadDoc(ctx, coll, userID)
	if err != nil {
		return nil, err
	}
	ids := doc.UserIDs
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// loadDoc fetches one side of the graph for a user, returning an empty
// document when none exists yet (documents are created lazily).
func (r *MongoFollowRepository) loadDoc(ctx context.Context, coll *mongo.Collection, userID string) (*models.FollowDoc, error) {
	var doc models.FollowDoc
	err := coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.NewFollowDoc(userID), nil
	}
	if err != nil {
		return nil, err
	}
	if doc.UserIDs == nil {
		doc.UserIDs = []string{}
	}
	return &doc, nil
}

func (r *MongoFollowRepository) saveDoc(ctx context.Context, coll *mongo.Collection, doc *models.FollowDoc) error {
	doc.LastUpdated = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": doc.UserID}, doc, opts)
	return err
}
