package service

import (
	"context"

	"github.com/PozdnyakovE/foodgram/entity"
	"github.com/PozdnyakovE/foodgram/mapper"
	"github.com/PozdnyakovE/foodgram/model"
	"github.com/PozdnyakovE/foodgram/repository"
	"github.com/PozdnyakovE/foodgram/util"
)

// SubscriptionService assembles followed-author views: profile, recipe
// slice capped by the caller-supplied limit and the uncapped recipe count.
type SubscriptionService struct {
	users   *repository.UserRepository
	recipes *repository.RecipeRepository
}

// NewSubscriptionService creates and returns a new SubscriptionService.
func NewSubscriptionService(users *repository.UserRepository, recipes *repository.RecipeRepository) *SubscriptionService {
	return &SubscriptionService{users: users, recipes: recipes}
}

// AuthorView composes the followed-profile view for one author.
// recipesLimit 0 means all recipes.
func (s *SubscriptionService) AuthorView(ctx context.Context, author *model.User, isSubscribed bool, recipesLimit int) (*entity.SubscriptionView, error) {
	recipes, err := s.recipes.ListRecipesByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipes.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	view := mapper.UserToSubscriptionView(author, isSubscribed, recipes, count)
	return &view, nil
}

// ListSubscriptions returns one page of the authors the caller follows,
// each with the capped recipe preview, plus the total count of followed
// authors.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, userID uint, page util.PageParams, recipesLimit int) ([]entity.SubscriptionView, int64, error) {
	authors, count, err := s.users.ListFollowedAuthors(ctx, userID, page)
	if err != nil {
		return nil, 0, err
	}

	views := make([]entity.SubscriptionView, 0, len(authors))
	for i := range authors {
		view, err := s.AuthorView(ctx, &authors[i], true, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, count, nil
}
