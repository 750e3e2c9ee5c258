package route

import (
	"github.com/PozdnyakovE/foodgram/config"
	"github.com/PozdnyakovE/foodgram/handler"
	"github.com/PozdnyakovE/foodgram/middleware"
	"github.com/PozdnyakovE/foodgram/repository"
	"github.com/PozdnyakovE/foodgram/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto the router.
//
// The router keeps a single wildcard per path position, so the DRF-style
// action paths (users/me, users/subscriptions, users/set_password,
// recipes/download_shopping_cart, users/me/avatar) are registered through
// the wildcard and dispatched inside the handlers.
func SetupRoutes(r *gin.Engine, cfg *config.Config, gormDB *gorm.DB, rdb *redis.Client) {
	r.Use(cors.Default())
	r.Static("/media", cfg.MediaRoot)

	userRepository := repository.NewUserRepository(gormDB)
	catalogRepository := repository.NewCatalogRepository(gormDB, rdb)
	recipeRepository := repository.NewRecipeRepository(gormDB)
	relationRepository := repository.NewRelationRepository(gormDB)
	shoppingRepository := repository.NewShoppingRepository(gormDB)

	authService := service.NewAuthService(userRepository, cfg)
	userService := service.NewUserService(userRepository, relationRepository, cfg.MediaRoot)
	catalogService := service.NewCatalogService(catalogRepository)
	recipeService := service.NewRecipeService(recipeRepository, catalogRepository, relationRepository, cfg.MediaRoot, cfg.Server.BaseURL)
	subscriptionService := service.NewSubscriptionService(userRepository, recipeRepository)
	relationService := service.NewRelationService(relationRepository, recipeRepository, userRepository, subscriptionService)
	shoppingService := service.NewShoppingListService(shoppingRepository)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, subscriptionService, relationService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	recipeHandler := handler.NewRecipeHandler(recipeService, relationService, shoppingService)

	// Read endpoints resolve the viewer when a token is present but stay
	// open to anonymous callers; the identity-scoped actions reached
	// through these routes enforce authentication themselves.
	public := r.Group("/api")
	public.Use(middleware.OptionalJWT(cfg))
	public.POST("/users", authHandler.Register)
	public.GET("/users", userHandler.List)
	public.GET("/users/:id", userHandler.Retrieve)
	public.GET("/tags", catalogHandler.ListTags)
	public.GET("/tags/:id", catalogHandler.GetTag)
	public.GET("/ingredients", catalogHandler.ListIngredients)
	public.GET("/ingredients/:id", catalogHandler.GetIngredient)
	public.GET("/recipes", recipeHandler.List)
	public.GET("/recipes/:id", recipeHandler.Retrieve)
	public.GET("/recipes/:id/get-link", recipeHandler.GetLink)
	public.POST("/auth/token/login", authHandler.Login)

	protected := r.Group("/api")
	protected.Use(middleware.AuthenticateJWT(cfg))
	protected.POST("/auth/token/logout", authHandler.Logout)
	protected.POST("/users/:id", authHandler.SetPassword)
	protected.PUT("/users/:id/avatar", userHandler.UpdateAvatar)
	protected.DELETE("/users/:id/avatar", userHandler.DeleteAvatar)
	protected.POST("/users/:id/subscribe", userHandler.Subscribe)
	protected.DELETE("/users/:id/subscribe", userHandler.Unsubscribe)

	protected.POST("/recipes", recipeHandler.Create)
	protected.PATCH("/recipes/:id", recipeHandler.Update)
	protected.DELETE("/recipes/:id", recipeHandler.Delete)
	protected.POST("/recipes/:id/favorite", recipeHandler.AddFavorite)
	protected.DELETE("/recipes/:id/favorite", recipeHandler.RemoveFavorite)
	protected.POST("/recipes/:id/shopping_cart", recipeHandler.AddToCart)
	protected.DELETE("/recipes/:id/shopping_cart", recipeHandler.RemoveFromCart)
}
