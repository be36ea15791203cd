package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/kenziahmos000/web-project-new/internal/errors"
	"github.com/kenziahmos000/web-project-new/internal/model"
	"github.com/kenziahmos000/web-project-new/internal/repository"
)

// FavoriteService maintains each user's favorites set. Both mutators return
// the full expanded set so a client can render without a second round trip.
type FavoriteService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error)
	Add(ctx context.Context, userID, recipeID uuid.UUID) (recipes []model.Recipe, already bool, err error)
	Remove(ctx context.Context, userID, recipeID uuid.UUID) ([]model.Recipe, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	recipeRepo   repository.RecipeRepository
	userRepo     repository.UserRepository
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	recipeRepo repository.RecipeRepository,
	userRepo repository.UserRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
		userRepo:     userRepo,
	}
}

// List returns the user's favorites expanded to full recipes.
func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	recipes, err := s.favoriteRepo.ListRecipes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return recipes, nil
}

// Add favorites a recipe. Adding an existing favorite succeeds idempotently
// and reports already=true, so a double-clicked favorite button stays safe.
func (s *favoriteService) Add(ctx context.Context, userID, recipeID uuid.UUID) ([]model.Recipe, bool, error) {
	if _, err := s.recipeRepo.FindByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperrors.ErrRecipeNotFound
		}
		return nil, false, fmt.Errorf("find recipe: %w", err)
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, false, err
	}

	already, err := s.favoriteRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, false, fmt.Errorf("check favorite: %w", err)
	}
	if !already {
		err := s.favoriteRepo.Add(ctx, &model.Favorite{UserID: userID, RecipeID: recipeID})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent add of the same edge; the set is unchanged.
			already = true
		} else if err != nil {
			return nil, false, fmt.Errorf("add favorite: %w", err)
		}
	}

	recipes, err := s.List(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return recipes, already, nil
}

// Remove deletes exactly one edge, failing if it does not exist.
func (s *favoriteService) Remove(ctx context.Context, userID, recipeID uuid.UUID) ([]model.Recipe, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	removed, err := s.favoriteRepo.Remove(ctx, userID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}
	if removed == 0 {
		return nil, apperrors.ErrFavoriteNotFound
	}

	return s.List(ctx, userID)
}

func (s *favoriteService) checkUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	return nil
}
