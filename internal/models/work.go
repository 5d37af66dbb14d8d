package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Work categories
const (
	WorkCategoryVoiceDrama   = "voice_drama"
	WorkCategoryScript       = "script"
	WorkCategoryIllustration = "illustration"
)

// Content ratings, ordered from least to most restricted
const (
	RatingAll = "all"
	RatingR15 = "r15"
	RatingR18 = "r18"
)

// Work represents a published work (voice drama, script or illustration)
// stored in MongoDB. LikeCount and CommentCount are denormalized counters;
// they are written only inside the LikeRecord/Comment transactions, never
// directly.
type Work struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        string             `json:"user_id" bson:"user_id"` // author's Firebase UID
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Category      string             `json:"category" bson:"category"`
	ContentRating string             `json:"content_rating" bson:"content_rating"`
	AudioURL      string             `json:"audio_url,omitempty" bson:"audio_url,omitempty"`
	ImageURL      string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Tags          []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	LikeCount     int                `json:"like_count" bson:"like_count"`
	CommentCount  int                `json:"comment_count" bson:"comment_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// ApplyLikeDelta adjusts the denormalized like counter, floored at zero.
func (w *Work) ApplyLikeDelta(delta int) {
	w.LikeCount += delta
	if w.LikeCount < 0 {
		w.LikeCount = 0
	}
}

// ApplyCommentDelta adjusts the denormalized comment counter, floored at zero.
func (w *Work) ApplyCommentDelta(delta int) {
	w.CommentCount += delta
	if w.CommentCount < 0 {
		w.CommentCount = 0
	}
}

// CreateWorkRequest defines the request body for publishing a new work
type CreateWorkRequest struct {
	Title         string   `json:"title" validate:"required,min=1,max=100"`
	Description   string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category      string   `json:"category" validate:"required,oneof=voice_drama script illustration"`
	ContentRating string   `json:"content_rating" validate:"required,oneof=all r15 r18"`
	AudioURL      string   `json:"audio_url,omitempty" validate:"omitempty,url"`
	ImageURL      string   `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=30"`
}
