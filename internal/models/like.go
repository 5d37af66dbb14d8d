package models

import "time"

// LikeRecord is the per-user set of liked work ids, the source of truth that
// Work.LikeCount is derived from. Created lazily on the first like and never
// deleted wholesale.
type LikeRecord struct {
	UserID       string    `json:"user_id" bson:"_id"`
	LikedWorkIDs []string  `json:"liked_work_ids" bson:"liked_work_ids"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// LikeToggleResult is the authoritative post-toggle state returned to the
// caller.
type LikeToggleResult struct {
	IsLiked      bool `json:"is_liked"`
	NewLikeCount int  `json:"new_like_count"`
}

// NewLikeRecord returns an empty record for a user who has not liked
// anything yet.
func NewLikeRecord(userID string) *LikeRecord {
	return &LikeRecord{UserID: userID, LikedWorkIDs: []string{}}
}

// HasLiked reports whether workID is in the liked set.
func (r *LikeRecord) HasLiked(workID string) bool {
	for _, id := range r.LikedWorkIDs {
		if id == workID {
			return true
		}
	}
	return false
}

// Toggle flips membership of workID and returns the resulting liked state.
func (r *LikeRecord) Toggle(workID string) bool {
	for i, id := range r.LikedWorkIDs {
		if id == workID {
			r.LikedWorkIDs = append(r.LikedWorkIDs[:i], r.LikedWorkIDs[i+1:]...)
			r.UpdatedAt = time.Now()
			return false
		}
	}
	r.LikedWorkIDs = append(r.LikedWorkIDs, workID)
	r.UpdatedAt = time.Now()
	return true
}
