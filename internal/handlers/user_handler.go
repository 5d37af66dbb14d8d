package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/koewave/koewave-backend/internal/models"
	"github.com/koewave/koewave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/users/:uid", h.GetUser)
	g.GET("/users/search", h.SearchUsers)
}

// GetUser retrieves another user's public profile by UID
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userRepository.GetUserByFirebaseUID(c.Param("uid"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	currentUID := getUIDFromContext(c)

	user, err := h.userRepository.GetUserByFirebaseUID(currentUID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// UpdateProfile updates the authenticated user's profile, provisioning the
// profile row on first write for users known only to the identity provider.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUID := getUIDFromContext(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByFirebaseUID(currentUID)
	if errors.Is(err, models.ErrNotFound) {
		user = &models.User{FirebaseUID: currentUID, JoinedAt: time.Now()}
		applyProfileUpdate(user, &req)
		if err := h.userRepository.CreateUser(user); err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": user})
	}
	if err != nil {
		return fail(c, err)
	}

	applyProfileUpdate(user, &req)
	if err := h.userRepository.UpdateUser(user); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// SearchUsers searches profiles by a query string
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return fail(c, err)
	}

	summaries := make([]models.UserSummary, len(users))
	for i, u := range users {
		summaries[i] = u.ToSummary()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": summaries}})
}

func applyProfileUpdate(user *models.User, req *models.UpdateProfileRequest) {
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.PhotoURL != "" {
		user.PhotoURL = req.PhotoURL
	}
}
