package model

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is one edge of the user→recipe favorites relation. The composite
// primary key gives the ledger set semantics: at most one edge per pair, with
// the unique constraint as the backstop against concurrent double-adds.
type Favorite struct {
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);primaryKey"`
	RecipeID  uuid.UUID `json:"recipeId" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
}
