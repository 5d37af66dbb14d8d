package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxCommentLength bounds comment content in characters.
const MaxCommentLength = 500

// Comment is a single entry in a work's comment thread, stored in MongoDB.
// Author display fields are denormalized at creation time.
type Comment struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	WorkID       string             `json:"work_id" bson:"work_id"`
	UserID       string             `json:"user_id" bson:"user_id"`
	Username     string             `json:"username" bson:"username"`
	DisplayName  string             `json:"display_name" bson:"display_name"`
	UserPhotoURL string             `json:"user_photo_url,omitempty" bson:"user_photo_url,omitempty"`
	Content      string             `json:"content" bson:"content"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// CreateCommentRequest defines the request body for commenting on a work
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

// CommentAuthor carries the denormalized author fields written into a new
// comment.
type CommentAuthor struct {
	UID         string
	Username    string
	DisplayName string
	PhotoURL    string
}
