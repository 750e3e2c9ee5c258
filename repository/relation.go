package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/PozdnyakovE/foodgram/model"

	"gorm.io/gorm"
)

// RelationKind selects which (user, target) relation table an operation acts
// on. Favorites and cart entries target recipes; subscriptions target users.
type RelationKind int

const (
	RelationFavorite RelationKind = iota
	RelationShoppingCart
	RelationSubscription
)

func (k RelationKind) String() string {
	switch k {
	case RelationFavorite:
		return "favorite"
	case RelationShoppingCart:
		return "shopping_cart"
	case RelationSubscription:
		return "subscription"
	}
	return "unknown"
}

var (
	// ErrRelationExists is returned by Add when the (user, target) pair is
	// already present. It is derived from the unique-index violation, so the
	// storage constraint, not a prior existence check, decides duplicates.
	ErrRelationExists = errors.New("relation already exists")

	// ErrRelationNotFound is returned by Remove when no matching row exists.
	ErrRelationNotFound = errors.New("relation does not exist")
)

// RelationRepository persists the three (user, target) relation tables
// behind one interface.
type RelationRepository struct {
	DB *gorm.DB
}

// NewRelationRepository creates and returns a new RelationRepository.
func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{DB: db}
}

func (k RelationKind) row(userID, targetID uint) (interface{}, error) {
	switch k {
	case RelationFavorite:
		return &model.Favorite{UserID: userID, RecipeID: targetID}, nil
	case RelationShoppingCart:
		return &model.ShoppingCart{UserID: userID, RecipeID: targetID}, nil
	case RelationSubscription:
		return &model.Subscription{UserID: userID, AuthorID: targetID}, nil
	}
	return nil, fmt.Errorf("unknown relation kind %d", k)
}

func (k RelationKind) conditions(userID, targetID uint) (interface{}, string, []interface{}, error) {
	switch k {
	case RelationFavorite:
		return &model.Favorite{}, "user_id = ? AND recipe_id = ?", []interface{}{userID, targetID}, nil
	case RelationShoppingCart:
		return &model.ShoppingCart{}, "user_id = ? AND recipe_id = ?", []interface{}{userID, targetID}, nil
	case RelationSubscription:
		return &model.Subscription{}, "user_id = ? AND author_id = ?", []interface{}{userID, targetID}, nil
	}
	return nil, "", nil, fmt.Errorf("unknown relation kind %d", k)
}

// Add inserts one relation row. A duplicate pair fails with
// ErrRelationExists.
func (r *RelationRepository) Add(ctx context.Context, kind RelationKind, userID, targetID uint) error {
	row, err := kind.row(userID, targetID)
	if err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRelationExists
		}
		return err
	}
	return nil
}

// Remove deletes the single matching relation row. A missing pair fails
// with ErrRelationNotFound; nothing else is ever cascaded.
func (r *RelationRepository) Remove(ctx context.Context, kind RelationKind, userID, targetID uint) error {
	destModel, where, args, err := kind.conditions(userID, targetID)
	if err != nil {
		return err
	}
	res := r.DB.WithContext(ctx).Where(where, args...).Delete(destModel)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRelationNotFound
	}
	return nil
}

// Exists reports whether the (user, target) pair is present.
func (r *RelationRepository) Exists(ctx context.Context, kind RelationKind, userID, targetID uint) (bool, error) {
	destModel, where, args, err := kind.conditions(userID, targetID)
	if err != nil {
		return false, err
	}
	var count int64
	if err := r.DB.WithContext(ctx).Model(destModel).Where(where, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecipeFlags reports, for a favorite or cart relation, which of the given
// recipes the user has added. Used to compose the viewer-relative booleans
// of recipe views in one query per relation.
func (r *RelationRepository) RecipeFlags(ctx context.Context, kind RelationKind, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	flags := make(map[uint]bool, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return flags, nil
	}

	var destModel interface{}
	switch kind {
	case RelationFavorite:
		destModel = &model.Favorite{}
	case RelationShoppingCart:
		destModel = &model.ShoppingCart{}
	default:
		return nil, fmt.Errorf("relation kind %s does not target recipes", kind)
	}

	var found []uint
	err := r.DB.WithContext(ctx).Model(destModel).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		flags[id] = true
	}
	return flags, nil
}

// SubscribedAuthors reports which of the given authors the user follows.
func (r *RelationRepository) SubscribedAuthors(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error) {
	flags := make(map[uint]bool, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return flags, nil
	}
	var found []uint
	err := r.DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		flags[id] = true
	}
	return flags, nil
}
