package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kenziahmos000/web-project-new/internal/auth"
	apperrors "github.com/kenziahmos000/web-project-new/internal/errors"
	"github.com/kenziahmos000/web-project-new/internal/model"
	"github.com/kenziahmos000/web-project-new/internal/service"
)

// FavoriteHandler handles favorites endpoints.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// FavoriteUser identifies the owner of a favorites set.
type FavoriteUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// FavoritesResponse carries the caller's full expanded favorites set.
type FavoritesResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message,omitempty"`
	User      FavoriteUser   `json:"user"`
	Favorites []model.Recipe `json:"favorites"`
}

// List godoc
// @Summary List the caller's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FavoritesResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
			Success: false,
			Message: "Invalid or expired token",
		})
	}

	favorites, err := h.favoriteService.List(c.Request().Context(), identity.ID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, FavoritesResponse{
		Success:   true,
		User:      FavoriteUser{ID: identity.ID, Email: identity.Email},
		Favorites: favorites,
	})
}

// Add godoc
// @Summary Add a recipe to the caller's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param recipeId path string true "Recipe ID"
// @Success 200 {object} FavoritesResponse "already favorited"
// @Success 201 {object} FavoritesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /favorites/{recipeId} [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
			Success: false,
			Message: "Invalid or expired token",
		})
	}

	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Success: false,
			Message: "invalid recipe ID",
			Error:   err.Error(),
		})
	}

	favorites, already, err := h.favoriteService.Add(c.Request().Context(), identity.ID, recipeID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	status := http.StatusCreated
	message := "Recipe added to favorites"
	if already {
		status = http.StatusOK
		message = "Recipe already in favorites"
	}

	return c.JSON(status, FavoritesResponse{
		Success:   true,
		Message:   message,
		User:      FavoriteUser{ID: identity.ID, Email: identity.Email},
		Favorites: favorites,
	})
}

// Remove godoc
// @Summary Remove a recipe from the caller's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param recipeId path string true "Recipe ID"
// @Success 200 {object} FavoritesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /favorites/{recipeId} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
			Success: false,
			Message: "Invalid or expired token",
		})
	}

	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Success: false,
			Message: "invalid recipe ID",
			Error:   err.Error(),
		})
	}

	favorites, err := h.favoriteService.Remove(c.Request().Context(), identity.ID, recipeID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, FavoritesResponse{
		Success:   true,
		Message:   "Recipe removed from favorites",
		User:      FavoriteUser{ID: identity.ID, Email: identity.Email},
		Favorites: favorites,
	})
}
