package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a creator/listener profile stored in PostgreSQL. Identity comes
// from the external auth provider; FirebaseUID is the canonical key used by
// all document-store references.
type User struct {
	gorm.Model  `json:"-"`
	ID          uint      `json:"-" gorm:"primaryKey"`
	FirebaseUID string    `json:"uid" gorm:"uniqueIndex"`
	Username    string    `json:"username" gorm:"uniqueIndex"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}

// UserSummary is the compact profile shape embedded in follower lists and
// feed entries.
type UserSummary struct {
	UID         string `json:"uid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// ToSummary converts a full profile to its compact form
func (u *User) ToSummary() UserSummary {
	return UserSummary{
		UID:         u.FirebaseUID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}

// UpdateProfileRequest defines the request body for updating the own profile
type UpdateProfileRequest struct {
	Username    string `json:"username,omitempty" validate:"omitempty,min=2,max=30"`
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,min=1,max=50"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=500"`
	PhotoURL    string `json:"photo_url,omitempty" validate:"omitempty,url"`
}
