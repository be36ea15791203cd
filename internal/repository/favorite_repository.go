package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kenziahmos000/web-project-new/internal/model"
)

// FavoriteRepository defines favorites ledger persistence operations.
type FavoriteRepository interface {
	Add(ctx context.Context, favorite *model.Favorite) error
	Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	Remove(ctx context.Context, userID, recipeID uuid.UUID) (int64, error)
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error)
	RemoveAllForRecipe(ctx context.Context, recipeID uuid.UUID) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts one edge. A concurrent duplicate add loses to the composite
// primary key and surfaces as gorm.ErrDuplicatedKey.
func (r *favoriteRepository) Add(ctx context.Context, favorite *model.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

// Exists reports whether the edge is present.
func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Remove deletes exactly the matching edge and returns the affected row count
// so callers can distinguish a missing edge from a successful removal.
func (r *favoriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.Favorite{})
	return res.RowsAffected, res.Error
}

// ListRecipes returns the user's favorites expanded to full recipes, in
// favoriting order. The inner join drops any edge whose recipe is gone.
func (r *favoriteRepository) ListRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// RemoveAllForRecipe deletes every edge pointing at a recipe. Used to cascade
// ledger cleanup when the recipe itself is deleted.
func (r *favoriteRepository) RemoveAllForRecipe(ctx context.Context, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&model.Favorite{}).Error
}
