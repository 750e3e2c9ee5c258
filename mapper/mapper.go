package mapper

import (
	"github.com/PozdnyakovE/foodgram/entity"
	"github.com/PozdnyakovE/foodgram/model"
	"github.com/PozdnyakovE/foodgram/util"
)

// TagToView maps a Tag model to its API representation.
func TagToView(tag *model.Tag) entity.TagView {
	return entity.TagView{
		ID:   tag.ID,
		Name: tag.Name,
		Slug: tag.Slug,
	}
}

// IngredientToView maps an Ingredient model to its API representation.
func IngredientToView(ingredient *model.Ingredient) entity.IngredientView {
	return entity.IngredientView{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

// UserToView maps a User model to the compact profile. isSubscribed is
// resolved by the caller against the viewing user.
func UserToView(user *model.User, isSubscribed bool) entity.UserView {
	return entity.UserView{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       util.MediaURL(user.Avatar),
	}
}

// RecipeToShort maps a Recipe model to its compact representation.
func RecipeToShort(recipe *model.Recipe) entity.RecipeShort {
	return entity.RecipeShort{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       util.MediaURL(recipe.Image),
		CookingTime: recipe.CookingTime,
	}
}

// RecipesToShort maps a recipe slice to compact representations.
func RecipesToShort(recipes []model.Recipe) []entity.RecipeShort {
	shorts := make([]entity.RecipeShort, 0, len(recipes))
	for i := range recipes {
		shorts = append(shorts, RecipeToShort(&recipes[i]))
	}
	return shorts
}

// RecipeToView assembles the full read-side view of a recipe. The recipe is
// expected to be loaded with its tags, author and ingredient joins; the
// viewer-relative booleans are resolved by the caller.
func RecipeToView(recipe *model.Recipe, authorSubscribed, favorited, inCart bool) entity.RecipeView {
	tags := make([]entity.TagView, 0, len(recipe.Tags))
	for i := range recipe.Tags {
		tags = append(tags, TagToView(&recipe.Tags[i]))
	}

	ingredients := make([]entity.IngredientLine, 0, len(recipe.Ingredients))
	for i := range recipe.Ingredients {
		ri := &recipe.Ingredients[i]
		ingredients = append(ingredients, entity.IngredientLine{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}

	return entity.RecipeView{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           UserToView(&recipe.Author, authorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             recipe.Name,
		Image:            util.MediaURL(recipe.Image),
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

// UserToSubscriptionView assembles a followed author's profile with a capped
// recipe slice and the uncapped total count.
func UserToSubscriptionView(author *model.User, isSubscribed bool, recipes []model.Recipe, recipesCount int64) entity.SubscriptionView {
	return entity.SubscriptionView{
		ID:           author.ID,
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: isSubscribed,
		Recipes:      RecipesToShort(recipes),
		RecipesCount: recipesCount,
		Avatar:       util.MediaURL(author.Avatar),
	}
}
