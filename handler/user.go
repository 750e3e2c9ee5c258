package handler

import (
	"net/http"

	"github.com/PozdnyakovE/foodgram/entity"
	"github.com/PozdnyakovE/foodgram/service"
	"github.com/PozdnyakovE/foodgram/util"

	"github.com/gin-gonic/gin"
)

// UserHandler serves user profiles, subscriptions and the avatar.
type UserHandler struct {
	users         *service.UserService
	subscriptions *service.SubscriptionService
	relations     *service.RelationService
}

// NewUserHandler creates and returns a new UserHandler.
func NewUserHandler(users *service.UserService, subscriptions *service.SubscriptionService, relations *service.RelationService) *UserHandler {
	return &UserHandler{users: users, subscriptions: subscriptions, relations: relations}
}

// List handles GET /api/users/.
func (h *UserHandler) List(c *gin.Context) {
	params := util.ParsePageParams(c.Request.URL.Query())
	views, count, err := h.users.ListUsers(c.Request.Context(), viewerID(c), params)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.BuildPage(c.Request.URL, params, count, views))
}

// Retrieve handles GET /api/users/:id. The router tree keeps one wildcard
// at this position, so the "me" and "subscriptions" actions are dispatched
// here.
func (h *UserHandler) Retrieve(c *gin.Context) {
	switch c.Param("id") {
	case "me":
		h.Me(c)
		return
	case "subscriptions":
		h.Subscriptions(c)
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.users.GetProfile(c.Request.Context(), viewerID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	id, ok := requireViewer(c)
	if !ok {
		return
	}
	view, err := h.users.GetProfile(c.Request.Context(), id, id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateAvatar handles PUT /api/users/me/avatar, registered as
// /users/:id/avatar with "me" as the only accepted value.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	if c.Param("id") != "me" {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}

	var req entity.AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"avatar": "avatar is required"})
		return
	}

	url, err := h.users.UpdateAvatar(c.Request.Context(), viewerID(c), req.Avatar)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": url})
}

// DeleteAvatar handles DELETE /api/users/me/avatar, registered as
// /users/:id/avatar with "me" as the only accepted value.
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	if c.Param("id") != "me" {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}

	if err := h.users.DeleteAvatar(c.Request.Context(), viewerID(c)); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscribe handles POST /api/users/:id/subscribe.
func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.relations.Subscribe(c.Request.Context(), viewerID(c), id, recipesLimit(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Unsubscribe handles DELETE /api/users/:id/subscribe.
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.relations.Unsubscribe(c.Request.Context(), viewerID(c), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscriptions handles GET /api/users/subscriptions.
func (h *UserHandler) Subscriptions(c *gin.Context) {
	id, ok := requireViewer(c)
	if !ok {
		return
	}
	params := util.ParsePageParams(c.Request.URL.Query())
	views, count, err := h.subscriptions.ListSubscriptions(c.Request.Context(), id, params, recipesLimit(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.BuildPage(c.Request.URL, params, count, views))
}
