package model

import (
	"time"
)

// User represents an application user.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:250;uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName string    `gorm:"size:150;not null" json:"first_name"`
	LastName  string    `gorm:"size:150;not null" json:"last_name"`
	Password  []byte    `gorm:"type:bytea;not null" json:"-"` // bcrypt hash, hidden from JSON
	Avatar    string    `gorm:"size:255" json:"avatar"`       // path below the media root
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Subscription links a follower to an author. A user may not follow
// themselves; that rule is enforced in the service layer, not by the schema.
type Subscription struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_user_author" json:"user_id"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_user_author" json:"author_id"`

	User   User `gorm:"foreignKey:UserID" json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

// Ingredient is a catalog entry. Name is deliberately not unique-constrained:
// the catalog is populated by import and may carry the same name under
// different measurement units.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:250;index;not null" json:"name"`
	MeasurementUnit string `gorm:"size:250;not null" json:"measurement_unit"`
}

// Tag is a catalog entry used to classify recipes.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:250;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"size:250;uniqueIndex;not null" json:"slug"`
}

// Recipe is owned by exactly one author. PubDate is set once on insert and
// never updated.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"size:250;not null" json:"name"`
	Text        string    `gorm:"size:4000;not null" json:"text"`
	CookingTime uint      `gorm:"not null" json:"cooking_time"` // minutes, >= 1
	Image       string    `gorm:"size:255" json:"image"`        // path below the media root
	PubDate     time.Time `gorm:"autoCreateTime;<-:create" json:"pub_date"`

	Author      User               `gorm:"foreignKey:AuthorID" json:"-"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

// RecipeIngredient joins a recipe to an ingredient with an amount. An
// ingredient appears at most once per recipe.
type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       uint `gorm:"not null" json:"amount"` // >= 1

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// Favorite marks a recipe as favorited by a user.
type Favorite struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`

	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}

// ShoppingCart marks a recipe as added to a user's shopping cart.
type ShoppingCart struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`

	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}
