package handler

import (
	"net/http"
	"strconv"

	"github.com/PozdnyakovE/foodgram/entity"
	"github.com/PozdnyakovE/foodgram/repository"
	"github.com/PozdnyakovE/foodgram/service"
	"github.com/PozdnyakovE/foodgram/util"

	"github.com/gin-gonic/gin"
)

// RecipeHandler serves the recipe resource and its relation sub-routes.
type RecipeHandler struct {
	recipes   *service.RecipeService
	relations *service.RelationService
	shopping  *service.ShoppingListService
}

// NewRecipeHandler creates and returns a new RecipeHandler.
func NewRecipeHandler(recipes *service.RecipeService, relations *service.RelationService, shopping *service.ShoppingListService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, relations: relations, shopping: shopping}
}

// parseFilter reads the recipe list filters from the query string. The
// identity-scoped filters are ignored for anonymous viewers.
func parseFilter(c *gin.Context) repository.RecipeFilter {
	var filter repository.RecipeFilter
	if v, err := strconv.ParseUint(c.Query("author"), 10, 32); err == nil {
		filter.AuthorID = uint(v)
	}
	filter.TagSlugs = c.QueryArray("tags")

	viewer := viewerID(c)
	if viewer != 0 {
		if c.Query("is_favorited") == "1" {
			filter.FavoritedBy = viewer
		}
		if c.Query("is_in_shopping_cart") == "1" {
			filter.InCartOf = viewer
		}
	}
	return filter
}

// List handles GET /api/recipes/.
func (h *RecipeHandler) List(c *gin.Context) {
	params := util.ParsePageParams(c.Request.URL.Query())
	views, count, err := h.recipes.ListRecipes(c.Request.Context(), viewerID(c), parseFilter(c), params)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.BuildPage(c.Request.URL, params, count, views))
}

// Retrieve handles GET /api/recipes/:id. The router tree keeps one
// wildcard at this position, so the download action is dispatched here.
func (h *RecipeHandler) Retrieve(c *gin.Context) {
	if c.Param("id") == "download_shopping_cart" {
		h.DownloadShoppingCart(c)
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.recipes.GetRecipe(c.Request.Context(), viewerID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Create handles POST /api/recipes/.
func (h *RecipeHandler) Create(c *gin.Context) {
	var req entity.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	view, err := h.recipes.CreateRecipe(c.Request.Context(), viewerID(c), &req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Update handles PATCH /api/recipes/:id.
func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req entity.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	view, err := h.recipes.UpdateRecipe(c.Request.Context(), viewerID(c), id, &req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /api/recipes/:id.
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), viewerID(c), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetLink handles GET /api/recipes/:id/get-link.
func (h *RecipeHandler) GetLink(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	link, err := h.recipes.ShortLink(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"short-link": link})
}

func (h *RecipeHandler) addRelation(c *gin.Context, kind repository.RelationKind) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	short, err := h.relations.AddRecipeRelation(c.Request.Context(), kind, viewerID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, short)
}

func (h *RecipeHandler) removeRelation(c *gin.Context, kind repository.RelationKind) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.relations.RemoveRecipeRelation(c.Request.Context(), kind, viewerID(c), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFavorite handles POST /api/recipes/:id/favorite.
func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, repository.RelationFavorite)
}

// RemoveFavorite handles DELETE /api/recipes/:id/favorite.
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, repository.RelationFavorite)
}

// AddToCart handles POST /api/recipes/:id/shopping_cart.
func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRelation(c, repository.RelationShoppingCart)
}

// RemoveFromCart handles DELETE /api/recipes/:id/shopping_cart.
func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, repository.RelationShoppingCart)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	id, ok := requireViewer(c)
	if !ok {
		return
	}
	document, err := h.shopping.BuildDocument(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="shopping_cart.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(document))
}
