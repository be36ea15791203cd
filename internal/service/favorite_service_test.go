package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/kenziahmos000/web-project-new/internal/errors"
	"github.com/kenziahmos000/web-project-new/internal/model"
)

func newFavoriteServiceForTest(favorites *MockFavoriteRepository, recipes *MockRecipeRepository, users *MockUserRepository) FavoriteService {
	return NewFavoriteService(favorites, recipes, users)
}

func expectUser(users *MockUserRepository, userID uuid.UUID) {
	users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Email: "user@example.com"}, nil)
}

func TestFavoriteService_Add(t *testing.T) {
	userID := uuid.New()
	recipeID := uuid.New()
	recipe := &model.Recipe{ID: recipeID, Title: "Soup"}

	t.Run("unknown recipe", func(t *testing.T) {
		recipes := new(MockRecipeRepository)
		recipes.On("FindByID", mock.Anything, recipeID).Return(nil, gorm.ErrRecordNotFound)

		svc := newFavoriteServiceForTest(new(MockFavoriteRepository), recipes, new(MockUserRepository))
		_, _, err := svc.Add(context.Background(), userID, recipeID)

		assert.ErrorIs(t, err, apperrors.ErrRecipeNotFound)
	})

	t.Run("first add creates the edge", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		recipes := new(MockRecipeRepository)
		users := new(MockUserRepository)
		recipes.On("FindByID", mock.Anything, recipeID).Return(recipe, nil)
		expectUser(users, userID)
		favorites.On("Exists", mock.Anything, userID, recipeID).Return(false, nil)
		favorites.On("Add", mock.Anything, mock.AnythingOfType("*model.Favorite")).Return(nil)
		favorites.On("ListRecipes", mock.Anything, userID).Return([]model.Recipe{*recipe}, nil)

		svc := newFavoriteServiceForTest(favorites, recipes, users)
		set, already, err := svc.Add(context.Background(), userID, recipeID)

		assert.NoError(t, err)
		assert.False(t, already)
		assert.Len(t, set, 1)
		favorites.AssertExpectations(t)
	})

	t.Run("repeat add is idempotent", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		recipes := new(MockRecipeRepository)
		users := new(MockUserRepository)
		recipes.On("FindByID", mock.Anything, recipeID).Return(recipe, nil)
		expectUser(users, userID)
		favorites.On("Exists", mock.Anything, userID, recipeID).Return(true, nil)
		favorites.On("ListRecipes", mock.Anything, userID).Return([]model.Recipe{*recipe}, nil)

		svc := newFavoriteServiceForTest(favorites, recipes, users)
		set, already, err := svc.Add(context.Background(), userID, recipeID)

		assert.NoError(t, err)
		assert.True(t, already)
		assert.Len(t, set, 1)
		favorites.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("concurrent add losing to the edge constraint still succeeds", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		recipes := new(MockRecipeRepository)
		users := new(MockUserRepository)
		recipes.On("FindByID", mock.Anything, recipeID).Return(recipe, nil)
		expectUser(users, userID)
		favorites.On("Exists", mock.Anything, userID, recipeID).Return(false, nil)
		favorites.On("Add", mock.Anything, mock.AnythingOfType("*model.Favorite")).Return(gorm.ErrDuplicatedKey)
		favorites.On("ListRecipes", mock.Anything, userID).Return([]model.Recipe{*recipe}, nil)

		svc := newFavoriteServiceForTest(favorites, recipes, users)
		set, already, err := svc.Add(context.Background(), userID, recipeID)

		assert.NoError(t, err)
		assert.True(t, already)
		assert.Len(t, set, 1)
	})
}

func TestFavoriteService_Remove(t *testing.T) {
	userID := uuid.New()
	recipeID := uuid.New()

	t.Run("missing edge leaves ledger untouched", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		users := new(MockUserRepository)
		expectUser(users, userID)
		favorites.On("Remove", mock.Anything, userID, recipeID).Return(int64(0), nil)

		svc := newFavoriteServiceForTest(favorites, new(MockRecipeRepository), users)
		set, err := svc.Remove(context.Background(), userID, recipeID)

		assert.ErrorIs(t, err, apperrors.ErrFavoriteNotFound)
		assert.Nil(t, set)
		favorites.AssertNotCalled(t, "ListRecipes", mock.Anything, mock.Anything)
	})

	t.Run("existing edge removed and set returned", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		users := new(MockUserRepository)
		expectUser(users, userID)
		favorites.On("Remove", mock.Anything, userID, recipeID).Return(int64(1), nil)
		favorites.On("ListRecipes", mock.Anything, userID).Return([]model.Recipe{}, nil)

		svc := newFavoriteServiceForTest(favorites, new(MockRecipeRepository), users)
		set, err := svc.Remove(context.Background(), userID, recipeID)

		assert.NoError(t, err)
		assert.Empty(t, set)
		favorites.AssertExpectations(t)
	})
}

func TestFavoriteService_List(t *testing.T) {
	userID := uuid.New()

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := newFavoriteServiceForTest(new(MockFavoriteRepository), new(MockRecipeRepository), users)
		_, err := svc.List(context.Background(), userID)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("empty set is an empty slice, not nil", func(t *testing.T) {
		favorites := new(MockFavoriteRepository)
		users := new(MockUserRepository)
		expectUser(users, userID)
		favorites.On("ListRecipes", mock.Anything, userID).Return([]model.Recipe{}, nil)

		svc := newFavoriteServiceForTest(favorites, new(MockRecipeRepository), users)
		set, err := svc.List(context.Background(), userID)

		assert.NoError(t, err)
		assert.NotNil(t, set)
		assert.Empty(t, set)
	})
}
