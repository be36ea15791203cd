package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kenziahmos000/web-project-new/internal/auth"
	apperrors "github.com/kenziahmos000/web-project-new/internal/errors"
	"github.com/kenziahmos000/web-project-new/internal/model"
	"github.com/kenziahmos000/web-project-new/internal/service"
)

// RecipeHandler handles recipe endpoints.
type RecipeHandler struct {
	recipeService service.RecipeService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// CreateRecipeRequest represents a recipe creation request. The image itself
// arrives as a multipart file under the "image" field; imageUrl is the
// alternative external reference.
type CreateRecipeRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
}

// UpdateRecipeRequest represents a partial recipe update. Empty title or
// description leave the stored value unchanged. removeImage="true" clears the
// image back to the default placeholder.
type UpdateRecipeRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
	RemoveImage string `json:"removeImage" form:"removeImage"`
}

// RecipeResponse represents a single-recipe payload.
type RecipeResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Recipe  *model.Recipe `json:"recipe"`
}

// RecipeListResponse represents the full recipe listing.
type RecipeListResponse struct {
	Success bool           `json:"success"`
	Recipes []model.Recipe `json:"recipes"`
}

// MessageResponse represents a bare success acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// List godoc
// @Summary List all recipes, newest first
// @Tags recipes
// @Produce json
// @Success 200 {object} RecipeListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	recipes, err := h.recipeService.List(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return c.JSON(http.StatusOK, RecipeListResponse{
		Success: true,
		Recipes: recipes,
	})
}

// Get godoc
// @Summary Get a single recipe
// @Tags recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} RecipeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Success: false,
			Message: "invalid recipe ID",
			Error:   err.Error(),
		})
	}

	recipe, err := h.recipeService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, RecipeResponse{
		Success: true,
		Recipe:  recipe,
	})
}

// Create godoc
// @Summary Create a recipe
// @Tags recipes
// @Accept mpfd
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param imageUrl formData string false "External image URL"
// @Param image formData file false "Uploaded image"
// @Success 201 {object} RecipeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
			Success: false,
			Message: "Invalid or expired token",
		})
	}

	var req CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Success: false,
			Message: "invalid request body",
			Error:   err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Success: false,
			Message: "Title and description are required",
			Error:   err.Error(),
		})
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), identity, req.Title, req.Description, service.ImageInput{
		Upload: formFile(c, "image"),
		URL:    req.ImageURL,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, RecipeResponse{
		Success: true,
		Message: "Recipe created successfully",
		Recipe:  recipe,
	})
}

// Update godoc
// @Summary Update an owned recipe
// @Tags recipes
// @Accept mpfd
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param imageUrl formData string false "External image URL"
// @Param removeImage formData string false "Set to true to clear the image"
// @Param image formData file false "Uploaded image"
// @Success 200 {object} RecipeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
			Success: false,
			Message: "Invalid or expired token",
		})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Success: false,
			Message: "invalid recipe ID",
			Error:   err.Error(),
		})
	}

	var req UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Success: false,
			Message: "invalid request body",
			Error:   err.Error(),
		})
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), identity, id, req.Title, req.Description, service.ImageInput{
		Upload: formFile(c, "image"),
		URL:    req.ImageURL,
		Remove: req.RemoveImage == "true",
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, RecipeResponse{
		Success: true,
		Message: "Recipe updated successfully",
		Recipe:  recipe,
	})
}

// Delete godoc
// @Summary Delete an owned recipe
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
			Success: false,
			Message: "Invalid or expired token",
		})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Success: false,
			Message: "invalid recipe ID",
			Error:   err.Error(),
		})
	}

	if err := h.recipeService.Delete(c.Request().Context(), identity, id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "Recipe deleted successfully",
	})
}

// formFile returns the named multipart file, or nil when the request carries
// none (including non-multipart JSON requests).
func formFile(c echo.Context, name string) *multipart.FileHeader {
	file, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}
