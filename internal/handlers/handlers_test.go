package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/koewave/koewave-backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory like ledger mirroring the transactional toggle semantics.
type memLikeRepo struct {
	counts  map[string]int
	records map[string]*models.LikeRecord
}

func newMemLikeRepo() *memLikeRepo {
	return &memLikeRepo{counts: map[string]int{}, records: map[string]*models.LikeRecord{}}
}

func (m *memLikeRepo) ToggleLike(ctx context.Context, workID, userID string) (*models.LikeToggleResult, error) {
	if _, ok := m.counts[workID]; !ok {
		return nil, fmt.Errorf("%w: work %s", models.ErrNotFound, workID)
	}
	record, ok := m.records[userID]
	if !ok {
		record = models.NewLikeRecord(userID)
		m.records[userID] = record
	}
	liked := record.Toggle(workID)
	if liked {
		m.counts[workID]++
	} else if m.counts[workID] > 0 {
		m.counts[workID]--
	}
	return &models.LikeToggleResult{IsLiked: liked, NewLikeCount: m.counts[workID]}, nil
}

func (m *memLikeRepo) HasLiked(ctx context.Context, workID, userID string) (bool, error) {
	record, ok := m.records[userID]
	if !ok {
		return false, nil
	}
	return record.HasLiked(workID), nil
}

func (m *memLikeRepo) GetLikedWorkIDs(ctx context.Context, userID string) ([]string, error) {
	record, ok := m.records[userID]
	if !ok {
		return []string{}, nil
	}
	return record.LikedWorkIDs, nil
}

// In-memory comment store with owner-only deletion.
type memCommentRepo struct {
	comments     map[string]*models.Comment
	commentCount int
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: map[string]*models.Comment{}}
}

func (m *memCommentRepo) CreateComment(ctx context.Context, workID, content string, author models.CommentAuthor) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is empty", models.ErrValidation)
	}
	comment := &models.Comment{
		ID:          primitive.NewObjectID(),
		WorkID:      workID,
		UserID:      author.UID,
		Username:    author.Username,
		DisplayName: author.DisplayName,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	m.comments[comment.ID.Hex()] = comment
	m.commentCount++
	return comment, nil
}

func (m *memCommentRepo) DeleteComment(ctx context.Context, commentID, requesterID string) error {
	comment, ok := m.comments[commentID]
	if !ok {
		return fmt.Errorf("%w: comment %s", models.ErrNotFound, commentID)
	}
	if comment.UserID != requesterID {
		return fmt.Errorf("%w: not the comment author", models.ErrPermissionDenied)
	}
	delete(m.comments, commentID)
	m.commentCount--
	return nil
}

func (m *memCommentRepo) GetCommentsByWorkID(ctx context.Context, workID string, limit int64) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range m.comments {
		if c.WorkID == workID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type memUserRepo struct {
	users map[string]*models.User
}

func (m *memUserRepo) CreateUser(user *models.User) error {
	m.users[user.FirebaseUID] = user
	return nil
}

func (m *memUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	user, ok := m.users[firebaseUID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, firebaseUID)
	}
	return user, nil
}

func (m *memUserRepo) GetUsersByFirebaseUIDs(firebaseUIDs []string) ([]models.User, error) {
	out := []models.User{}
	for _, uid := range firebaseUIDs {
		if user, ok := m.users[uid]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (m *memUserRepo) UpdateUser(user *models.User) error { return nil }

func (m *memUserRepo) SearchUsers(query string) ([]models.User, error) { return nil, nil }

func newTestContext(method, path, body, uid string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("firebaseUID", uid)
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestToggleLikeEnvelope(t *testing.T) {
	likes := newMemLikeRepo()
	likes.counts["work-1"] = 0
	h := NewLikeHandler(likes)

	c, rec := newTestContext(http.MethodPost, "/works/work-1/like", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues("work-1")
	require.NoError(t, h.ToggleLike(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["is_liked"])
	assert.Equal(t, float64(1), body["new_like_count"])

	// Second toggle from the same user unlikes.
	c, rec = newTestContext(http.MethodPost, "/works/work-1/like", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues("work-1")
	require.NoError(t, h.ToggleLike(c))

	body = decodeBody(t, rec)
	assert.Equal(t, false, body["is_liked"])
	assert.Equal(t, float64(0), body["new_like_count"])
}

func TestToggleLikeMissingWork(t *testing.T) {
	h := NewLikeHandler(newMemLikeRepo())

	c, rec := newTestContext(http.MethodPost, "/works/missing/like", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, h.ToggleLike(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "not found")
}

func TestGetLikeStatus(t *testing.T) {
	likes := newMemLikeRepo()
	likes.counts["work-1"] = 0
	h := NewLikeHandler(likes)

	c, _ := newTestContext(http.MethodPost, "/works/work-1/like", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues("work-1")
	require.NoError(t, h.ToggleLike(c))

	c, rec := newTestContext(http.MethodGet, "/works/work-1/like/status", "", "alice")
	c.SetParamNames("id")
	c.SetParamValues("work-1")
	require.NoError(t, h.GetLikeStatus(c))

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_liked"])
}

func TestCreateCommentDenormalizesAuthor(t *testing.T) {
	comments := newMemCommentRepo()
	users := &memUserRepo{users: map[string]*models.User{
		"alice": {FirebaseUID: "alice", Username: "alice_w", DisplayName: "アリス"},
	}}
	h := NewCommentHandler(comments, users)

	c, rec := newTestContext(http.MethodPost, "/works/work-1/comments", `{"content":"素敵な作品でした。"}`, "alice")
	c.SetParamNames("id")
	c.SetParamValues("work-1")
	require.NoError(t, h.CreateComment(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["comment_id"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "alice_w", data["username"])
	assert.Equal(t, "アリス", data["display_name"])
	assert.Equal(t, 1, comments.commentCount)
}

func TestDeleteCommentOnlyByAuthor(t *testing.T) {
	comments := newMemCommentRepo()
	created, err := comments.CreateComment(context.Background(), "work-1", "感想です。", models.CommentAuthor{UID: "alice"})
	require.NoError(t, err)

	h := NewCommentHandler(comments, &memUserRepo{users: map[string]*models.User{}})

	// A different user is refused and the thread is untouched.
	c, rec := newTestContext(http.MethodDelete, "/comments/"+created.ID.Hex(), "", "mallory")
	c.SetParamNames("id")
	c.SetParamValues(created.ID.Hex())
	require.NoError(t, h.DeleteComment(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, comments.commentCount)

	// The author succeeds.
	c, rec = newTestContext(http.MethodDelete, "/comments/"+created.ID.Hex(), "", "alice")
	c.SetParamNames("id")
	c.SetParamValues(created.ID.Hex())
	require.NoError(t, h.DeleteComment(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, comments.commentCount)
}

func TestFailErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: bad input", models.ErrValidation), http.StatusBadRequest},
		{"invalid operation", fmt.Errorf("%w: cannot follow yourself", models.ErrInvalidOperation), http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: work x", models.ErrNotFound), http.StatusNotFound},
		{"permission denied", fmt.Errorf("%w: not the owner", models.ErrPermissionDenied), http.StatusForbidden},
		{"unknown", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/", "", "alice")
			require.NoError(t, fail(c, tc.err))
			assert.Equal(t, tc.want, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
		})
	}
}
