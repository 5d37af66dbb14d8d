package repositories

import (
	"context"
	"strings"
	"testing"

	"github.com/koewave/koewave-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

// The guard clauses below run before any session is opened, so they are
// exercised against zero-value repositories without a live database.

func TestFollowSelfRejected(t *testing.T) {
	r := &MongoFollowRepository{}
	err := r.Follow(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, models.ErrInvalidOperation)
}

func TestUnfollowSelfRejected(t *testing.T) {
	r := &MongoFollowRepository{}
	err := r.Unfollow(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, models.ErrInvalidOperation)
}

func TestToggleLikeInvalidWorkID(t *testing.T) {
	r := &MongoLikeRepository{}
	_, err := r.ToggleLike(context.Background(), "not-a-hex-id", "alice")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateCommentEmptyContent(t *testing.T) {
	r := &MongoCommentRepository{}
	author := models.CommentAuthor{UID: "alice"}

	_, err := r.CreateComment(context.Background(), "64f000000000000000000000", "", author)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = r.CreateComment(context.Background(), "64f000000000000000000000", "   \n\t ", author)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateCommentTooLong(t *testing.T) {
	r := &MongoCommentRepository{}
	content := strings.Repeat("あ", models.MaxCommentLength+1)

	_, err := r.CreateComment(context.Background(), "64f000000000000000000000", content, models.CommentAuthor{UID: "alice"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateCommentInvalidWorkID(t *testing.T) {
	r := &MongoCommentRepository{}
	_, err := r.CreateComment(context.Background(), "nope", "感想です。", models.CommentAuthor{UID: "alice"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteCommentInvalidID(t *testing.T) {
	r := &MongoCommentRepository{}
	err := r.DeleteComment(context.Background(), "nope", "alice")
	assert.ErrorIs(t, err, models.ErrValidation)
}
