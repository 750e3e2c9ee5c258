package handler

import (
	"net/http"

	"github.com/PozdnyakovE/foodgram/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only tag and ingredient catalogs. Neither
// list is paginated.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates and returns a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListTags handles GET /api/tags/.
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.catalog.ListTags(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTag handles GET /api/tags/:id.
func (h *CatalogHandler) GetTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tag, err := h.catalog.GetTag(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// ListIngredients handles GET /api/ingredients/?name=<prefix>.
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.catalog.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// GetIngredient handles GET /api/ingredients/:id.
func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ingredient, err := h.catalog.GetIngredient(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}
