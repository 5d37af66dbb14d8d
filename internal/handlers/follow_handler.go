package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/koewave/koewave-backend/internal/models"
	"github.com/koewave/koewave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const defaultListLimit = 50

// FollowHandler handles follow graph HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:uid/follow", h.FollowUser)
	g.DELETE("/users/:uid/follow", h.UnfollowUser)
	g.GET("/users/:uid/follow/status", h.GetFollowStatus)
	g.GET("/users/:uid/follow/stats", h.GetFollowStats)
	g.GET("/users/:uid/followers", h.ListFollowers)
	g.GET("/users/:uid/following", h.ListFollowing)
}

// FollowUser follows the target user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUID := getUIDFromContext(c)
	targetUID := c.Param("uid")

	// Verify the target exists before creating the edge
	if _, err := h.userRepository.GetUserByFirebaseUID(targetUID); err != nil {
		return fail(c, err)
	}

	if err := h.followRepository.Follow(c.Request().Context(), currentUID, targetUID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser unfollows the target user. Removing a non-existent edge is
// still a success.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUID := getUIDFromContext(c)
	targetUID := c.Param("uid")

	if err := h.followRepository.Unfollow(c.Request().Context(), currentUID, targetUID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

// GetFollowStatus returns the relationship between the caller and the target
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	currentUID := getUIDFromContext(c)
	targetUID := c.Param("uid")

	status, err := h.followRepository.GetFollowStatus(c.Request().Context(), currentUID, targetUID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": status})
}

// GetFollowStats returns the denormalized follower/following counts
func (h *FollowHandler) GetFollowStats(c echo.Context) error {
	stats, err := h.followRepository.GetStats(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}

// ListFollowers resolves the follower set into profile summaries
func (h *FollowHandler) ListFollowers(c echo.Context) error {
	return h.listMembers(c, h.followRepository.GetFollowerIDs)
}

// ListFollowing resolves the following set into profile summaries
func (h *FollowHandler) ListFollowing(c echo.Context) error {
	return h.listMembers(c, h.followRepository.GetFollowingIDs)
}

func (h *FollowHandler) listMembers(c echo.Context, fetch func(ctx context.Context, userID string, limit int) ([]string, error)) error {
	ids, err := fetch(c.Request().Context(), c.Param("uid"), parseLimit(c))
	if err != nil {
		return fail(c, err)
	}

	users, err := h.userRepository.GetUsersByFirebaseUIDs(ids)
	if err != nil {
		return fail(c, err)
	}

	// Keep the stored set's arrival order rather than the batch query's.
	byUID := make(map[string]models.UserSummary, len(users))
	for _, u := range users {
		byUID[u.FirebaseUID] = u.ToSummary()
	}
	summaries := []models.UserSummary{}
	for _, id := range ids {
		if s, ok := byUID[id]; ok {
			summaries = append(summaries, s)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": summaries}})
}

func parseLimit(c echo.Context) int {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 200 {
		limit = defaultListLimit
	}
	return limit
}
