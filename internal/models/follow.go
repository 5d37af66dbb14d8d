package models

import "time"

// FollowDoc is one side of the denormalized follow graph: either the set of
// users following the owner, or the set of users the owner follows. The two
// sides of an edge are always written together in one transaction, so
// uid ∈ following(a) exactly when a ∈ followers(uid). Count mirrors
// len(UserIDs).
type FollowDoc struct {
	UserID      string    `json:"user_id" bson:"_id"`
	UserIDs     []string  `json:"user_ids" bson:"user_ids"`
	Count       int       `json:"count" bson:"count"`
	LastUpdated time.Time `json:"last_updated" bson:"last_updated"`
}

// NewFollowDoc returns an empty document for a user with no edges yet.
// Documents are created lazily on first follow and persist empty after the
// last unfollow.
func NewFollowDoc(userID string) *FollowDoc {
	return &FollowDoc{UserID: userID, UserIDs: []string{}}
}

// Has reports whether uid is a member of the set.
func (d *FollowDoc) Has(uid string) bool {
	for _, id := range d.UserIDs {
		if id == uid {
			return true
		}
	}
	return false
}

// Add inserts uid into the set and bumps the counter. Returns false without
// modification when uid is already a member, so a repeated follow never
// double-increments.
func (d *FollowDoc) Add(uid string) bool {
	if d.Has(uid) {
		return false
	}
	d.UserIDs = append(d.UserIDs, uid)
	d.Count = len(d.UserIDs)
	d.LastUpdated = time.Now()
	return true
}

// Remove deletes uid from the set and recomputes the counter. Returns false
// when uid was not a member.
func (d *FollowDoc) Remove(uid string) bool {
	for i, id := range d.UserIDs {
		if id == uid {
			d.UserIDs = append(d.UserIDs[:i], d.UserIDs[i+1:]...)
			d.Count = len(d.UserIDs)
			d.LastUpdated = time.Now()
			return true
		}
	}
	return false
}

// FollowStatus describes the relationship between two users from the
// viewer's perspective.
type FollowStatus struct {
	IsFollowing bool `json:"is_following"`
	IsFollower  bool `json:"is_follower"`
	IsMutual    bool `json:"is_mutual"`
}

// FollowStats carries the denormalized counters for a profile page.
type FollowStats struct {
	FollowerCount  int `json:"follower_count"`
	FollowingCount int `json:"following_count"`
}
