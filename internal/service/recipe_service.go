package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kenziahmos000/web-project-new/internal/auth"
	"github.com/kenziahmos000/web-project-new/internal/cache"
	apperrors "github.com/kenziahmos000/web-project-new/internal/errors"
	"github.com/kenziahmos000/web-project-new/internal/model"
	"github.com/kenziahmos000/web-project-new/internal/repository"
	"github.com/kenziahmos000/web-project-new/internal/storage"
)

const (
	recipeListCacheKey = "recipes:all"
	recipeListCacheTTL = time.Minute
)

// ImageInput is the image instruction accompanying a create or update.
// At most one branch applies; an uploaded file wins over a URL, and Remove
// is only meaningful on update.
type ImageInput struct {
	Upload *multipart.FileHeader
	URL    string
	Remove bool
}

// RecipeService handles recipe CRUD with ownership enforcement and image
// lifecycle management.
type RecipeService interface {
	List(ctx context.Context) ([]model.Recipe, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	Create(ctx context.Context, owner auth.Identity, title, description string, img ImageInput) (*model.Recipe, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, title, description string, img ImageInput) (*model.Recipe, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

type recipeService struct {
	recipeRepo   repository.RecipeRepository
	favoriteRepo repository.FavoriteRepository
	images       storage.ImageStore
	cache        *cache.Client
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	favoriteRepo repository.FavoriteRepository,
	images storage.ImageStore,
	cache *cache.Client,
) RecipeService {
	return &recipeService{
		recipeRepo:   recipeRepo,
		favoriteRepo: favoriteRepo,
		images:       images,
		cache:        cache,
	}
}

// List returns all recipes newest first, served from cache when fresh.
func (s *recipeService) List(ctx context.Context) ([]model.Recipe, error) {
	if data, _ := s.cache.Get(ctx, recipeListCacheKey); data != nil {
		var cached []model.Recipe
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	recipes, err := s.recipeRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	if payload, err := json.Marshal(recipes); err == nil {
		_ = s.cache.Set(ctx, recipeListCacheKey, payload, recipeListCacheTTL)
	}

	return recipes, nil
}

// Get returns one recipe by ID.
func (s *recipeService) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return recipe, nil
}

// Create stores a new recipe owned by the caller. The image is either a
// fresh upload, a caller-supplied URL, or the default placeholder.
func (s *recipeService) Create(ctx context.Context, owner auth.Identity, title, description string, img ImageInput) (*model.Recipe, error) {
	image := storage.DefaultImage
	switch {
	case img.Upload != nil:
		ref, err := s.images.Save(img.Upload)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		image = ref
	case img.URL != "":
		image = img.URL
	}

	recipe := &model.Recipe{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Image:       image,
		UserID:      owner.ID,
		UserEmail:   owner.Email,
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		s.discardManaged(recipe.Image)
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	_ = s.cache.Delete(ctx, recipeListCacheKey)
	return recipe, nil
}

// Update applies a partial update to a caller-owned recipe. Empty title or
// description leave the stored value unchanged; the image follows the
// instruction table (clear / upload / url / leave as is). updated_at always
// advances, even for a no-op call.
func (s *recipeService) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, title, description string, img ImageInput) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	if recipe.UserID != caller.ID {
		return nil, apperrors.ErrNotOwner
	}

	if title != "" {
		recipe.Title = title
	}
	if description != "" {
		recipe.Description = description
	}

	previous := recipe.Image
	superseded := false
	switch {
	case img.Remove:
		recipe.Image = storage.DefaultImage
		superseded = true
	case img.Upload != nil:
		ref, err := s.images.Save(img.Upload)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		recipe.Image = ref
		superseded = true
	case img.URL != "":
		recipe.Image = img.URL
		superseded = true
	}

	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		if superseded && recipe.Image != previous {
			s.discardManaged(recipe.Image)
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	// The old file is only released once the record points elsewhere, so a
	// store failure never strands the recipe with a deleted image.
	if superseded && recipe.Image != previous {
		s.discardManaged(previous)
	}

	_ = s.cache.Delete(ctx, recipeListCacheKey)
	return recipe, nil
}

// Delete removes a caller-owned recipe, cascades its favorite edges and
// releases its managed image.
func (s *recipeService) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRecipeNotFound
		}
		return fmt.Errorf("find recipe: %w", err)
	}
	if recipe.UserID != caller.ID {
		return apperrors.ErrNotOwner
	}

	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	// Edge and asset cleanup are advisory once the record is gone: failures
	// are logged, never surfaced, and safe to repeat.
	if err := s.favoriteRepo.RemoveAllForRecipe(ctx, id); err != nil {
		log.Printf("cascade favorites for recipe %s: %v", id, err)
	}
	s.discardManaged(recipe.Image)

	_ = s.cache.Delete(ctx, recipeListCacheKey)
	return nil
}

// discardManaged best-effort deletes the file behind a managed ref. External
// URLs and the default placeholder are never touched; a failed delete is
// logged and the mutation still succeeds.
func (s *recipeService) discardManaged(ref string) {
	if !storage.Managed(ref) {
		return
	}
	if err := s.images.Remove(ref); err != nil {
		log.Printf("remove image %s: %v", ref, err)
	}
}
