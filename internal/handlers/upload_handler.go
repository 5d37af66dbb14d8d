package handlers

import (
	"net/http"

	"github.com/koewave/koewave-backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// UploadHandler issues time-limited upload URLs for work assets
type UploadHandler struct {
	uploader *storage.Uploader
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploader *storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// RegisterUploadRoutes registers upload-related routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.IssueUploadURL)
}

// IssueUploadURLRequest defines the request body for requesting an upload URL
type IssueUploadURLRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}

// IssueUploadURL returns a signed upload URL scoped to the caller plus the
// public URL the asset will be delivered from.
func (h *UploadHandler) IssueUploadURL(c echo.Context) error {
	currentUID := getUIDFromContext(c)

	var req IssueUploadURLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	grant, err := h.uploader.IssueUploadURL(c.Request().Context(), currentUID, req.ContentType)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": grant})
}
