package service

import (
	"encoding/base64"
	"testing"

	"github.com/PozdnyakovE/foodgram/config"
	"github.com/PozdnyakovE/foodgram/db"
	"github.com/PozdnyakovE/foodgram/model"
	"github.com/PozdnyakovE/foodgram/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack over an in-memory database with a
// throwaway media root.
type testEnv struct {
	db            *gorm.DB
	auth          *AuthService
	users         *UserService
	recipes       *RecipeService
	relations     *RelationService
	subscriptions *SubscriptionService
	shopping      *ShoppingListService
	catalog       *CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mediaRoot := t.TempDir()
	userRepo := repository.NewUserRepository(gdb)
	catalogRepo := repository.NewCatalogRepository(gdb, nil)
	recipeRepo := repository.NewRecipeRepository(gdb)
	relationRepo := repository.NewRelationRepository(gdb)
	shoppingRepo := repository.NewShoppingRepository(gdb)

	subscriptions := NewSubscriptionService(userRepo, recipeRepo)
	return &testEnv{
		db:            gdb,
		auth:          NewAuthService(userRepo, &config.Config{JWTSecretKey: "test-secret"}),
		users:         NewUserService(userRepo, relationRepo, mediaRoot),
		recipes:       NewRecipeService(recipeRepo, catalogRepo, relationRepo, mediaRoot, "https://foodgram.example.org"),
		relations:     NewRelationService(relationRepo, recipeRepo, userRepo, subscriptions),
		subscriptions: subscriptions,
		shopping:      NewShoppingListService(shoppingRepo),
		catalog:       NewCatalogService(catalogRepo),
	}
}

// pngDataURI returns a small valid data-URI image payload.
func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 'P', 'N', 'G'})
}

func (e *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  []byte("x"),
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) createTag(t *testing.T, name, slug string) model.Tag {
	t.Helper()
	tag := model.Tag{Name: name, Slug: slug}
	if err := e.db.Create(&tag).Error; err != nil {
		t.Fatalf("create tag %s: %v", slug, err)
	}
	return tag
}

func (e *testEnv) createIngredient(t *testing.T, name, unit string) *model.Ingredient {
	t.Helper()
	ing := &model.Ingredient{Name: name, MeasurementUnit: unit}
	if err := e.db.Create(ing).Error; err != nil {
		t.Fatalf("create ingredient %s: %v", name, err)
	}
	return ing
}

func (e *testEnv) createRecipe(t *testing.T, authorID uint, name string) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Text:        "some text",
		CookingTime: 10,
	}
	if err := e.db.Create(recipe).Error; err != nil {
		t.Fatalf("create recipe %s: %v", name, err)
	}
	return recipe
}

func (e *testEnv) countRows(t *testing.T, table string) int64 {
	t.Helper()
	var count int64
	if err := e.db.Table(table).Count(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}
