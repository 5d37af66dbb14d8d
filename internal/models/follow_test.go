package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowDocAddAndRemove(t *testing.T) {
	doc := NewFollowDoc("alice")
	assert.False(t, doc.Has("bob"))
	assert.Zero(t, doc.Count)

	require.True(t, doc.Add("bob"))
	assert.True(t, doc.Has("bob"))
	assert.Equal(t, 1, doc.Count)

	require.True(t, doc.Remove("bob"))
	assert.False(t, doc.Has("bob"))
	assert.Zero(t, doc.Count)
}

func TestFollowDocRepeatedAddDoesNotDoubleCount(t *testing.T) {
	doc := NewFollowDoc("alice")
	require.True(t, doc.Add("bob"))
	assert.False(t, doc.Add("bob"))
	assert.Equal(t, 1, doc.Count)
	assert.Len(t, doc.UserIDs, 1)
}

func TestFollowDocRemoveAbsentMember(t *testing.T) {
	doc := NewFollowDoc("alice")
	doc.Add("bob")
	assert.False(t, doc.Remove("carol"))
	assert.Equal(t, 1, doc.Count)
}

func TestFollowDocCountMirrorsMembership(t *testing.T) {
	doc := NewFollowDoc("alice")
	for _, uid := range []string{"bob", "carol", "dave"} {
		doc.Add(uid)
		assert.Equal(t, len(doc.UserIDs), doc.Count)
	}
	doc.Remove("carol")
	assert.Equal(t, len(doc.UserIDs), doc.Count)
	assert.Equal(t, 2, doc.Count)
}

// The repository writes both sides of an edge in one transaction; this
// exercises the same document mutations it performs.
func TestFollowEdgeSymmetry(t *testing.T) {
	followingA := NewFollowDoc("alice")
	followersB := NewFollowDoc("bob")

	// alice follows bob
	require.True(t, followingA.Add("bob"))
	require.True(t, followersB.Add("alice"))
	assert.True(t, followingA.Has("bob"))
	assert.True(t, followersB.Has("alice"))

	// repeated follow is a no-op on both sides
	assert.False(t, followingA.Add("bob"))
	assert.Equal(t, 1, followingA.Count)
	assert.Equal(t, 1, followersB.Count)

	// unfollow removes both sides
	require.True(t, followingA.Remove("bob"))
	require.True(t, followersB.Remove("alice"))
	assert.False(t, followingA.Has("bob"))
	assert.False(t, followersB.Has("alice"))
	assert.Zero(t, followingA.Count)
	assert.Zero(t, followersB.Count)
}
