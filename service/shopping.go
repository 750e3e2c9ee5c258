package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/PozdnyakovE/foodgram/repository"
)

// shoppingListHeader is the fixed first line of the exported document.
const shoppingListHeader = "Shopping list:\n"

// ShoppingListService renders a user's aggregated shopping list as a flat
// text document.
type ShoppingListService struct {
	shopping *repository.ShoppingRepository
}

// NewShoppingListService creates and returns a new ShoppingListService.
func NewShoppingListService(shopping *repository.ShoppingRepository) *ShoppingListService {
	return &ShoppingListService{shopping: shopping}
}

// BuildDocument gathers every ingredient row across the user's cart, merged
// by (name, measurement unit) with summed amounts, one line per ingredient.
// An empty cart yields the header only.
func (s *ShoppingListService) BuildDocument(ctx context.Context, userID uint) (string, error) {
	lines, err := s.shopping.AggregateCart(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(shoppingListHeader)
	for _, line := range lines {
		fmt.Fprintf(&b, "\n%s, %d, %s", line.Name, line.Amount, line.MeasurementUnit)
	}
	return b.String(), nil
}
