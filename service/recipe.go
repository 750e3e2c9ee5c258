package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/PozdnyakovE/foodgram/entity"
	"github.com/PozdnyakovE/foodgram/mapper"
	"github.com/PozdnyakovE/foodgram/model"
	"github.com/PozdnyakovE/foodgram/repository"
	"github.com/PozdnyakovE/foodgram/util"

	"gorm.io/gorm"
)

// RecipeService validates and persists recipe aggregates and assembles
// their read-side views. Responses are always the read-side view, never an
// echo of the write payload.
type RecipeService struct {
	recipes   *repository.RecipeRepository
	catalog   *repository.CatalogRepository
	relations *repository.RelationRepository
	mediaRoot string
	baseURL   string
}

// NewRecipeService creates and returns a new RecipeService.
func NewRecipeService(recipes *repository.RecipeRepository, catalog *repository.CatalogRepository,
	relations *repository.RelationRepository, mediaRoot, baseURL string) *RecipeService {
	return &RecipeService{
		recipes:   recipes,
		catalog:   catalog,
		relations: relations,
		mediaRoot: mediaRoot,
		baseURL:   baseURL,
	}
}

// validateRequest checks the write payload in a fixed order: required
// fields, duplicate tag references, duplicate ingredient references,
// ingredient existence, positive amounts. The first violated rule wins and
// the error names the offending reference. It returns the resolved tag set.
func (s *RecipeService) validateRequest(ctx context.Context, req *entity.RecipeRequest, imageRequired bool) ([]model.Tag, error) {
	if req.Name == "" {
		return nil, util.ValidationError("name", "name is required")
	}
	if req.Text == "" {
		return nil, util.ValidationError("text", "text is required")
	}
	if req.CookingTime < 1 {
		return nil, util.ValidationError("cooking_time", "cooking_time must be at least 1")
	}
	if imageRequired && req.Image == "" {
		return nil, util.ValidationError("image", "image is required")
	}
	if len(req.Tags) == 0 {
		return nil, util.ValidationError("tags", "tags must not be empty")
	}
	if len(req.Ingredients) == 0 {
		return nil, util.ValidationError("ingredients", "ingredients must not be empty")
	}

	seenTags := make(map[uint]bool, len(req.Tags))
	for _, id := range req.Tags {
		if seenTags[id] {
			return nil, util.ValidationError("tags", fmt.Sprintf("duplicate tag with id %d", id))
		}
		seenTags[id] = true
	}

	seenIngredients := make(map[uint]bool, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if seenIngredients[ing.ID] {
			return nil, util.ValidationError("ingredients", fmt.Sprintf("duplicate ingredient with id %d", ing.ID))
		}
		seenIngredients[ing.ID] = true
	}

	tags, err := s.catalog.GetTagsByIDs(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(req.Tags) {
		found := make(map[uint]bool, len(tags))
		for _, t := range tags {
			found[t.ID] = true
		}
		for _, id := range req.Tags {
			if !found[id] {
				return nil, util.ValidationError("tags", fmt.Sprintf("tag with id %d not found", id))
			}
		}
	}

	ids := make([]uint, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ids = append(ids, ing.ID)
	}
	existing, err := s.catalog.ExistingIngredientIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, ing := range req.Ingredients {
		if !existing[ing.ID] {
			return nil, util.ValidationError("ingredients", fmt.Sprintf("ingredient with id %d not found", ing.ID))
		}
	}

	for _, ing := range req.Ingredients {
		if ing.Amount < 1 {
			return nil, util.ValidationError("ingredients", fmt.Sprintf("amount for ingredient %d must be greater than 0", ing.ID))
		}
	}
	return tags, nil
}

func ingredientRows(req *entity.RecipeRequest) []model.RecipeIngredient {
	rows := make([]model.RecipeIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		rows = append(rows, model.RecipeIngredient{
			IngredientID: ing.ID,
			Amount:       uint(ing.Amount),
		})
	}
	return rows
}

// CreateRecipe persists a new recipe aggregate for the author and returns
// its read-side view.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uint, req *entity.RecipeRequest) (*entity.RecipeView, error) {
	tags, err := s.validateRequest(ctx, req, true)
	if err != nil {
		return nil, err
	}

	imagePath, err := util.SaveBase64Image(req.Image, s.mediaRoot, "recipes_images")
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: uint(req.CookingTime),
		Image:       imagePath,
	}
	if err := s.recipes.CreateRecipe(ctx, recipe, tags, ingredientRows(req)); err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, authorID, recipe.ID)
}

// UpdateRecipe replaces a recipe's fields, tag set and ingredient rows
// wholesale. Only the author may update; the image is kept when the payload
// omits it.
func (s *RecipeService) UpdateRecipe(ctx context.Context, viewerID, recipeID uint, req *entity.RecipeRequest) (*entity.RecipeView, error) {
	current, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("recipe not found")
		}
		return nil, err
	}
	if current.AuthorID != viewerID {
		return nil, util.PermissionError("you do not have permission to update this recipe")
	}

	// Partial update: omitted scalar fields keep their stored values. Tags
	// and ingredients are always required and replaced wholesale.
	if req.Name == "" {
		req.Name = current.Name
	}
	if req.Text == "" {
		req.Text = current.Text
	}
	if req.CookingTime == 0 {
		req.CookingTime = int(current.CookingTime)
	}

	tags, err := s.validateRequest(ctx, req, false)
	if err != nil {
		return nil, err
	}

	imagePath := current.Image
	if req.Image != "" {
		imagePath, err = util.SaveBase64Image(req.Image, s.mediaRoot, "recipes_images")
		if err != nil {
			return nil, err
		}
	}

	updated := &model.Recipe{
		ID:          recipeID,
		AuthorID:    current.AuthorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: uint(req.CookingTime),
		Image:       imagePath,
	}
	if err := s.recipes.UpdateRecipe(ctx, updated, tags, ingredientRows(req)); err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, viewerID, recipeID)
}

// DeleteRecipe removes a recipe. Only the author may delete; all other
// callers get a permission error, never a silent no-op.
func (s *RecipeService) DeleteRecipe(ctx context.Context, viewerID, recipeID uint) error {
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("recipe not found")
		}
		return err
	}
	if recipe.AuthorID != viewerID {
		return util.PermissionError("you do not have permission to delete this recipe")
	}
	return s.recipes.DeleteRecipe(ctx, recipeID)
}

// GetRecipe returns the read-side view of one recipe for the given viewer.
func (s *RecipeService) GetRecipe(ctx context.Context, viewerID, recipeID uint) (*entity.RecipeView, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("recipe not found")
		}
		return nil, err
	}
	views, err := s.composeViews(ctx, viewerID, []model.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListRecipes returns one page of recipe views plus the total count for the
// filter.
func (s *RecipeService) ListRecipes(ctx context.Context, viewerID uint, filter repository.RecipeFilter, page util.PageParams) ([]entity.RecipeView, int64, error) {
	recipes, count, err := s.recipes.ListRecipes(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.composeViews(ctx, viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return views, count, nil
}

// ShortLink returns the canonical short link for a recipe.
func (s *RecipeService) ShortLink(ctx context.Context, recipeID uint) (string, error) {
	if _, err := s.recipes.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.NotFoundError("recipe not found")
		}
		return "", err
	}
	return fmt.Sprintf("%s/recipes/%d/", s.baseURL, recipeID), nil
}

// composeViews resolves the viewer-relative flags for a batch of recipes in
// three queries and maps them to read-side views. The flags reflect
// relation existence at read time; all are false for anonymous viewers.
func (s *RecipeService) composeViews(ctx context.Context, viewerID uint, recipes []model.Recipe) ([]entity.RecipeView, error) {
	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for i := range recipes {
		recipeIDs = append(recipeIDs, recipes[i].ID)
		authorIDs = append(authorIDs, recipes[i].AuthorID)
	}

	favorited, err := s.relations.RecipeFlags(ctx, repository.RelationFavorite, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.relations.RecipeFlags(ctx, repository.RelationShoppingCart, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.relations.SubscribedAuthors(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]entity.RecipeView, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		views = append(views, mapper.RecipeToView(r, subscribed[r.AuthorID], favorited[r.ID], inCart[r.ID]))
	}
	return views, nil
}
