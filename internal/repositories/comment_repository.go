package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/koewave/koewave-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment thread operations. It
// is the only writer of Work.comment_count.
type CommentRepository interface {
	CreateComment(ctx context.Context, workID, content string, author models.CommentAuthor) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID, requesterID string) error
	GetCommentsByWorkID(ctx context.Context, workID string, limit int64) ([]models.Comment, error)
}

// MongoCommentRepository implements CommentRepository over the "comments"
// and "works" collections, keeping the denormalized comment counter inside
// the same transaction as the row mutation.
type MongoCommentRepository struct {
	client   *mongo.Client
	comments *mongo.Collection
	works    *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(client *mongo.Client, db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{
		client:   client,
		comments: db.Collection("comments"),
		works:    db.Collection("works"),
	}
}

// CreateComment validates content, verifies the work exists, then inserts
// the comment and increments the counter in one transaction.
func (r *MongoCommentRepository) CreateComment(ctx context.Context, workID, content string, author models.CommentAuthor) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is empty", models.ErrValidation)
	}
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", models.ErrValidation, models.MaxCommentLength)
	}

	workObjID, err := primitive.ObjectIDFromHex(workID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid work ID format", models.ErrValidation)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		count, err := r.works.CountDocuments(sc, bson.M{"_id": workObjID})
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: work %s", models.ErrNotFound, workID)
		}

		comment := &models.Comment{
			ID:           primitive.NewObjectID(),
			WorkID:       workID,
			UserID:       author.UID,
			Username:     author.Username,
			DisplayName:  author.DisplayName,
			UserPhotoURL: author.PhotoURL,
			Content:      content,
			CreatedAt:    time.Now(),
		}
		if _, err := r.comments.InsertOne(sc, comment); err != nil {
			return nil, err
		}

		update := bson.M{"$inc": bson.M{"comment_count": 1}}
		if _, err := r.works.UpdateOne(sc, bson.M{"_id": workObjID}, update); err != nil {
			return nil, err
		}
		return comment, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Comment), nil
}

// DeleteComment removes a comment and decrements the counter in one
// transaction. Only the comment's author may delete it.
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, commentID, requesterID string) error {
	objID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return fmt.Errorf("%w: invalid comment ID format", models.ErrValidation)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var comment models.Comment
		if err := r.comments.FindOne(sc, bson.M{"_id": objID}).Decode(&comment); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, fmt.Errorf("%w: comment %s", models.ErrNotFound, commentID)
			}
			return nil, err
		}
		if comment.UserID != requesterID {
			return nil, fmt.Errorf("%w: not the comment author", models.ErrPermissionDenied)
		}

		if _, err := r.comments.DeleteOne(sc, bson.M{"_id": objID}); err != nil {
			return nil, err
		}

		// Decrement via read-modify-write so the counter floors at zero.
		workObjID, err := primitive.ObjectIDFromHex(comment.WorkID)
		if err != nil {
			return nil, nil
		}
		var work models.Work
		if err := r.works.FindOne(sc, bson.M{"_id": workObjID}).Decode(&work); err != nil {
			if err == mongo.ErrNoDocuments {
				// Work already removed; nothing to decrement.
				return nil, nil
			}
			return nil, err
		}
		work.ApplyCommentDelta(-1)
		update := bson.M{"$set": bson.M{"comment_count": work.CommentCount}}
		if _, err := r.works.UpdateOne(sc, bson.M{"_id": workObjID}, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// GetCommentsByWorkID retrieves comments for a work, newest first
func (r *MongoCommentRepository) GetCommentsByWorkID(ctx context.Context, workID string, limit int64) ([]models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	cursor, err := r.comments.Find(ctx, bson.M{"work_id": workID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
