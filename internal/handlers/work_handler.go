package handlers

import (
	"net/http"
	"strconv"

	"github.com/koewave/koewave-backend/internal/models"
	"github.com/koewave/koewave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// WorkHandler handles HTTP requests related to published works
type WorkHandler struct {
	workRepository repositories.WorkRepository
}

// NewWorkHandler creates a new WorkHandler
func NewWorkHandler(workRepo repositories.WorkRepository) *WorkHandler {
	return &WorkHandler{workRepository: workRepo}
}

// RegisterWorkRoutes registers work-related routes
func (h *WorkHandler) RegisterWorkRoutes(g *echo.Group) {
	g.POST("/works", h.CreateWork)
	g.GET("/works/:id", h.GetWork)
	g.GET("/users/:uid/works", h.GetWorksByUser)
	g.DELETE("/works/:id", h.DeleteWork)
}

// CreateWork publishes a new work authored by the caller
func (h *WorkHandler) CreateWork(c echo.Context) error {
	currentUID := getUIDFromContext(c)

	var req models.CreateWorkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	work := &models.Work{
		UserID:        currentUID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		ContentRating: req.ContentRating,
		AudioURL:      req.AudioURL,
		ImageURL:      req.ImageURL,
		Tags:          req.Tags,
	}
	if err := h.workRepository.CreateWork(c.Request().Context(), work); err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": work})
}

// GetWork retrieves a single work by ID
func (h *WorkHandler) GetWork(c echo.Context) error {
	work, err := h.workRepository.GetWorkByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": work})
}

// GetWorksByUser lists an author's works, newest first
func (h *WorkHandler) GetWorksByUser(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	skip := int64((page - 1) * limit)

	works, err := h.workRepository.GetWorksByUserID(c.Request().Context(), c.Param("uid"), skip, int64(limit))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"works": works}})
}

// DeleteWork deletes a work owned by the caller
func (h *WorkHandler) DeleteWork(c echo.Context) error {
	currentUID := getUIDFromContext(c)

	if err := h.workRepository.DeleteWork(c.Request().Context(), c.Param("id"), currentUID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
