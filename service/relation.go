package service

import (
	"context"
	"errors"

	"github.com/PozdnyakovE/foodgram/entity"
	"github.com/PozdnyakovE/foodgram/mapper"
	"github.com/PozdnyakovE/foodgram/model"
	"github.com/PozdnyakovE/foodgram/repository"
	"github.com/PozdnyakovE/foodgram/util"

	"gorm.io/gorm"
)

// relationMessages carries the per-kind error texts rendered at the request
// boundary.
type relationMessages struct {
	conflict string
	missing  string
}

var recipeRelationMessages = map[repository.RelationKind]relationMessages{
	repository.RelationFavorite: {
		conflict: "recipe is already in favorites",
		missing:  "recipe is not in your favorites",
	},
	repository.RelationShoppingCart: {
		conflict: "recipe is already in the shopping cart",
		missing:  "recipe is not in your shopping cart",
	},
}

// RelationService implements the generic add/remove contract over the three
// relation kinds. Repeated adds are rejected with a conflict, never
// silently accepted; removals of absent pairs fail with not-found.
type RelationService struct {
	relations     *repository.RelationRepository
	recipes       *repository.RecipeRepository
	users         *repository.UserRepository
	subscriptions *SubscriptionService
}

// NewRelationService creates and returns a new RelationService.
func NewRelationService(relations *repository.RelationRepository, recipes *repository.RecipeRepository,
	users *repository.UserRepository, subscriptions *SubscriptionService) *RelationService {
	return &RelationService{
		relations:     relations,
		recipes:       recipes,
		users:         users,
		subscriptions: subscriptions,
	}
}

func (s *RelationService) getRecipe(ctx context.Context, recipeID uint) (*model.Recipe, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("recipe not found")
		}
		return nil, err
	}
	return recipe, nil
}

// AddRecipeRelation adds a favorite or cart entry for the viewer and
// returns the short recipe view.
func (s *RelationService) AddRecipeRelation(ctx context.Context, kind repository.RelationKind, userID, recipeID uint) (*entity.RecipeShort, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.relations.Add(ctx, kind, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrRelationExists) {
			return nil, util.ConflictError(recipeRelationMessages[kind].conflict)
		}
		return nil, err
	}
	short := mapper.RecipeToShort(recipe)
	return &short, nil
}

// RemoveRecipeRelation removes a favorite or cart entry for the viewer.
func (s *RelationService) RemoveRecipeRelation(ctx context.Context, kind repository.RelationKind, userID, recipeID uint) error {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return err
	}
	if err := s.relations.Remove(ctx, kind, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrRelationNotFound) {
			return util.RelationNotFoundError(recipeRelationMessages[kind].missing)
		}
		return err
	}
	return nil
}

// Subscribe follows an author on behalf of the user and returns the
// followed-profile view. Following yourself is rejected before any write.
func (s *RelationService) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*entity.SubscriptionView, error) {
	author, err := s.users.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("user not found")
		}
		return nil, err
	}
	if userID == authorID {
		return nil, util.ValidationError("errors", "cannot subscribe to yourself")
	}
	if err := s.relations.Add(ctx, repository.RelationSubscription, userID, authorID); err != nil {
		if errors.Is(err, repository.ErrRelationExists) {
			return nil, util.ConflictError("already subscribed to this user")
		}
		return nil, err
	}
	return s.subscriptions.AuthorView(ctx, author, true, recipesLimit)
}

// Unsubscribe removes the subscription to an author.
func (s *RelationService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if _, err := s.users.GetUserByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("user not found")
		}
		return err
	}
	if err := s.relations.Remove(ctx, repository.RelationSubscription, userID, authorID); err != nil {
		if errors.Is(err, repository.ErrRelationNotFound) {
			return util.RelationNotFoundError("you are not subscribed to this user")
		}
		return err
	}
	return nil
}
