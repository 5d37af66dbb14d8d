package handlers

import (
	"net/http"
	"strconv"

	"github.com/koewave/koewave-backend/internal/models"
	"github.com/koewave/koewave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comment threads
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		userRepository:    userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/works/:id/comments", h.CreateComment)
	g.GET("/works/:id/comments", h.GetCommentsByWorkID)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment posts a new comment on a work
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUID := getUIDFromContext(c)
	workID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.userRepository.GetUserByFirebaseUID(currentUID)
	if err != nil {
		return fail(c, err)
	}

	author := models.CommentAuthor{
		UID:         user.FirebaseUID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
	comment, err := h.commentRepository.CreateComment(c.Request().Context(), workID, req.Content, author)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":    true,
		"comment_id": comment.ID.Hex(),
		"data":       comment,
	})
}

// GetCommentsByWorkID retrieves a work's comments, newest first
func (h *CommentHandler) GetCommentsByWorkID(c echo.Context) error {
	workID := c.Param("id")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 200 {
		limit = defaultListLimit
	}

	comments, err := h.commentRepository.GetCommentsByWorkID(c.Request().Context(), workID, int64(limit))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comments": comments}})
}

// DeleteComment deletes a comment. Only the comment's author may delete it.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUID := getUIDFromContext(c)
	commentID := c.Param("id")

	if err := h.commentRepository.DeleteComment(c.Request().Context(), commentID, currentUID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
