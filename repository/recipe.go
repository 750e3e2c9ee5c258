package repository

import (
	"context"

	"github.com/PozdnyakovE/foodgram/model"
	"github.com/PozdnyakovE/foodgram/util"

	"gorm.io/gorm"
)

// RecipeFilter narrows a recipe listing. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID    uint
	TagSlugs    []string
	FavoritedBy uint
	InCartOf    uint
}

// RecipeRepository persists recipes together with their tag set and
// ingredient join rows.
type RecipeRepository struct {
	DB *gorm.DB
}

// NewRecipeRepository creates and returns a new RecipeRepository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{DB: db}
}

func (r *RecipeRepository) withJoins(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.id")
		}).
		Preload("Ingredients.Ingredient")
}

// GetRecipeByID fetches a recipe with its author, tags and ingredient rows.
func (r *RecipeRepository) GetRecipeByID(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.withJoins(ctx).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepository) applyFilter(query *gorm.DB, filter RecipeFilter) *gorm.DB {
	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
	}
	if filter.FavoritedBy != 0 {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", filter.FavoritedBy)
	}
	if filter.InCartOf != 0 {
		query = query.
			Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
			Where("shopping_carts.user_id = ?", filter.InCartOf)
	}
	return query
}

// ListRecipes returns one page of recipes, newest first, plus the total
// count for the filter.
func (r *RecipeRepository) ListRecipes(ctx context.Context, filter RecipeFilter, page util.PageParams) ([]model.Recipe, int64, error) {
	// The tag join yields one row per matched slug, so those queries
	// deduplicate: the count over distinct IDs, the rows by grouping on the
	// primary key.
	var count int64
	countQuery := r.applyFilter(r.DB.WithContext(ctx).Model(&model.Recipe{}), filter)
	if len(filter.TagSlugs) > 0 {
		countQuery = countQuery.Distinct("recipes.id")
	}
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	listQuery := r.applyFilter(r.withJoins(ctx), filter)
	if len(filter.TagSlugs) > 0 {
		listQuery = listQuery.Group("recipes.id")
	}
	err := listQuery.
		Order("recipes.pub_date DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

// ListRecipesByAuthor returns an author's recipes, newest first, capped at
// limit when limit > 0.
func (r *RecipeRepository) ListRecipesByAuthor(ctx context.Context, authorID uint, limit int) ([]model.Recipe, error) {
	query := r.DB.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountRecipesByAuthor returns the author's total recipe count, independent
// of any slice limit.
func (r *RecipeRepository) CountRecipesByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// CreateRecipe inserts the recipe row, attaches the full tag set and
// bulk-inserts the ingredient join rows inside one transaction.
func (r *RecipeRepository) CreateRecipe(ctx context.Context, recipe *model.Recipe, tags []model.Tag, ingredients []model.RecipeIngredient) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
		}
		return tx.Create(&ingredients).Error
	})
}

// UpdateRecipe saves the recipe fields and replaces the tag set and
// ingredient rows wholesale inside one transaction, so a concurrent reader
// never observes a recipe with partial ingredients.
func (r *RecipeRepository) UpdateRecipe(ctx context.Context, recipe *model.Recipe, tags []model.Tag, ingredients []model.RecipeIngredient) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Recipe{ID: recipe.ID}).
			Select("name", "text", "cooking_time", "image").
			Updates(map[string]interface{}{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"image":        recipe.Image,
			}).Error
		if err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range ingredients {
			ingredients[i].ID = 0
			ingredients[i].RecipeID = recipe.ID
		}
		return tx.Create(&ingredients).Error
	})
}

// DeleteRecipe removes the recipe together with its join rows and relation
// rows.
func (r *RecipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, id).Error
	})
}
