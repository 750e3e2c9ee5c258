package repository

import (
	"context"

	"github.com/PozdnyakovE/foodgram/entity"

	"gorm.io/gorm"
)

// ShoppingRepository aggregates ingredient rows across a user's cart.
type ShoppingRepository struct {
	DB *gorm.DB
}

// NewShoppingRepository creates and returns a new ShoppingRepository.
func NewShoppingRepository(db *gorm.DB) *ShoppingRepository {
	return &ShoppingRepository{DB: db}
}

// AggregateCart collapses every ingredient row of every recipe in the
// user's cart into one summed line per (name, measurement unit). The group
// key is the ingredient's display identity, so distinct catalog rows
// sharing the same name and unit merge into one line.
func (r *ShoppingRepository) AggregateCart(ctx context.Context, userID uint) ([]entity.ShoppingLine, error) {
	var lines []entity.ShoppingLine
	err := r.DB.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
