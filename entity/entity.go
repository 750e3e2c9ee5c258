package entity

// TagView is the API representation of a tag.
type TagView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// IngredientView is the API representation of a catalog ingredient.
type IngredientView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// UserView is the compact user profile embedded in recipe and subscription
// responses. IsSubscribed is relative to the viewing user and always false
// for anonymous viewers.
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
	Avatar       string `json:"avatar"`
}

// IngredientLine is one ingredient row of a recipe view, sourced through the
// recipe-ingredient join.
type IngredientLine struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          uint   `json:"amount"`
}

// RecipeView is the full read-side representation of a recipe. The two
// viewer-relative booleans reflect relation existence at read time.
type RecipeView struct {
	ID               uint             `json:"id"`
	Tags             []TagView        `json:"tags"`
	Author           UserView         `json:"author"`
	Ingredients      []IngredientLine `json:"ingredients"`
	IsFavorited      bool             `json:"is_favorited"`
	IsInShoppingCart bool             `json:"is_in_shopping_cart"`
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	Text             string           `json:"text"`
	CookingTime      uint             `json:"cooking_time"`
}

// RecipeShort is the compact recipe representation returned by the favorite
// and shopping-cart toggles and embedded in subscription views.
type RecipeShort struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime uint   `json:"cooking_time"`
}

// SubscriptionView is a followed author's profile plus a capped slice of
// their recipes and the uncapped total count.
type SubscriptionView struct {
	ID           uint          `json:"id"`
	Email        string        `json:"email"`
	Username     string        `json:"username"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	IsSubscribed bool          `json:"is_subscribed"`
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
	Avatar       string        `json:"avatar"`
}

// ShoppingLine is one aggregated line of the shopping list document.
type ShoppingLine struct {
	Name            string `json:"name"`
	Amount          uint   `json:"amount"`
	MeasurementUnit string `json:"measurement_unit"`
}

// --- request payloads ---

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// IngredientAmount references a catalog ingredient with its amount in a
// recipe write payload.
type IngredientAmount struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeRequest is the recipe create/update payload. Image carries a
// base64-embedded file; on partial update an empty image keeps the stored
// one.
type RecipeRequest struct {
	Ingredients []IngredientAmount `json:"ingredients"`
	Tags        []uint             `json:"tags"`
	Image       string             `json:"image"`
	Name        string             `json:"name"`
	Text        string             `json:"text"`
	CookingTime int                `json:"cooking_time"`
}
