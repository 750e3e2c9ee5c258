package handler

import (
	"net/http"
	"strconv"

	"github.com/PozdnyakovE/foodgram/logger"
	"github.com/PozdnyakovE/foodgram/middleware"
	"github.com/PozdnyakovE/foodgram/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// renderError maps service errors onto the JSON error shapes of the API.
// Validation and conflict errors carry their own status and field key;
// anything else is an internal failure.
func renderError(c *gin.Context, err error) {
	if apiErr, ok := util.AsAPIError(err); ok {
		c.JSON(apiErr.Status, gin.H{apiErr.Field: apiErr.Message})
		return
	}
	logger.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// viewerID returns the authenticated user's ID from the request context, or
// 0 for anonymous requests.
func viewerID(c *gin.Context) uint {
	if v, ok := c.Get(middleware.UserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// requireViewer returns the authenticated user's ID or renders a 401 for
// anonymous callers. Used by identity-scoped actions that live on otherwise
// public routes.
func requireViewer(c *gin.Context) (uint, bool) {
	id := viewerID(c)
	if id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
		return 0, false
	}
	return id, true
}

// pathID parses the numeric resource ID path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return 0, false
	}
	return uint(id), true
}

// recipesLimit parses the optional recipes_limit query parameter; 0 means
// no cap.
func recipesLimit(c *gin.Context) int {
	v, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
