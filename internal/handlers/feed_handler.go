package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/koewave/koewave-backend/internal/models"
	"github.com/koewave/koewave-backend/internal/services"
	"github.com/labstack/echo/v4"
)

const (
	defaultPerAuthorLimit = 10
	defaultFeedLimit      = 50
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the follow feed for the current user. The `ratings` query
// parameter is a comma-separated allow list; the viewer's identity and
// rating preference are explicit inputs, never ambient state.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUID := getUIDFromContext(c)

	perAuthor, _ := strconv.Atoi(c.QueryParam("per_author_limit"))
	if perAuthor < 1 || perAuthor > 20 {
		perAuthor = defaultPerAuthorLimit
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = defaultFeedLimit
	}

	ratings := []string{models.RatingAll}
	if raw := c.QueryParam("ratings"); raw != "" {
		ratings = []string{}
		for _, r := range strings.Split(raw, ",") {
			if r = strings.TrimSpace(r); r != "" {
				ratings = append(ratings, r)
			}
		}
	}

	result, err := h.feedService.AssembleFeed(c.Request().Context(), currentUID, perAuthor, limit, ratings)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    result,
	})
}
