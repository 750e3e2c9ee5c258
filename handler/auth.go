package handler

import (
	"net/http"

	"github.com/PozdnyakovE/foodgram/entity"
	"github.com/PozdnyakovE/foodgram/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, token login/logout and password change.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates and returns a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/users/.
func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// Login handles POST /api/auth/token/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}

// Logout handles POST /api/auth/token/logout. Tokens are stateless, so the
// endpoint only confirms the discard.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SetPassword handles POST /api/users/set_password, registered as
// /users/:id with "set_password" as the only accepted value.
func (h *AuthHandler) SetPassword(c *gin.Context) {
	if c.Param("id") != "set_password" {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}

	var req entity.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := h.auth.SetPassword(c.Request.Context(), viewerID(c), &req); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
