package handlers

import (
	"net/http"

	"github.com/koewave/koewave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository) *LikeHandler {
	return &LikeHandler{likeRepository: likeRepo}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/works/:id/like", h.ToggleLike)
	g.GET("/works/:id/like/status", h.GetLikeStatus)
}

// ToggleLike flips the caller's like on a work and returns the
// authoritative post-toggle state. Any like count the client sent along for
// its optimistic UI is ignored; the ledger recomputes from its own read.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUID := getUIDFromContext(c)
	workID := c.Param("id")

	result, err := h.likeRepository.ToggleLike(c.Request().Context(), workID, currentUID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"is_liked":       result.IsLiked,
		"new_like_count": result.NewLikeCount,
	})
}

// GetLikeStatus reports whether the caller currently likes the work
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	currentUID := getUIDFromContext(c)
	workID := c.Param("id")

	liked, err := h.likeRepository.HasLiked(c.Request().Context(), workID, currentUID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"is_liked": liked}})
}
