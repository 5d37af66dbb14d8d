package handlers

import (
	"errors"
	"net/http"

	"github.com/koewave/koewave-backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUIDFromContext returns the authenticated caller's UID set by the auth
// middleware, or "" on unauthenticated routes.
func getUIDFromContext(c echo.Context) string {
	uid, _ := c.Get("firebaseUID").(string)
	return uid
}

// fail maps a sentinel error to its HTTP status and renders the tagged
// failure envelope. Unrecognized errors become 500s; callers never see a
// raised exception across this boundary.
func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidOperation):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrPermissionDenied):
		status = http.StatusForbidden
	}
	return c.JSON(status, echo.Map{"success": false, "error": err.Error()})
}
