package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DronKashyap/DK-PropertyListings/internal/auth"
	"github.com/DronKashyap/DK-PropertyListings/internal/middleware"
	"github.com/DronKashyap/DK-PropertyListings/internal/model"
	"github.com/DronKashyap/DK-PropertyListings/internal/repository"
)

// AuthHandler owns signup/signin and the account routes.
type AuthHandler struct {
	Users  *repository.UserRepository
	Issuer *auth.Issuer
}

// RegisterRoutes registers the open auth routes and the bearer-protected
// account routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/signup", h.Signup)
	public.POST("/signin", h.Signin)

	protected.POST("/signout", h.Signout)
	protected.PUT("/user", h.UpdateUser)
	protected.DELETE("/user", h.DeleteUser)
}

// SignupRequestDTO mirrors the original signup payload.
type SignupRequestDTO struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Avatar   string `json:"avatar" binding:"omitempty,url"`
}

// POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "errors": err.Error()})
		return
	}

	_, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	avatar := req.Avatar
	if avatar == "" {
		avatar = model.DefaultAvatar
	}
	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Avatar:   avatar,
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	token, err := h.Issuer.Issue(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user, "token": token})
}

// SigninRequestDTO mirrors the original signin payload.
type SigninRequestDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "errors": err.Error()})
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		// same response for unknown email and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := h.Issuer.Issue(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signin successful", "user": user, "token": token})
}

// POST /signout — tokens are stateless, the client just drops its copy.
func (h *AuthHandler) Signout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Signout successful"})
}

// UpdateUserRequestDTO carries the optional profile fields.
type UpdateUserRequestDTO struct {
	Username *string `json:"username" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Avatar   *string `json:"avatar" binding:"omitempty,url"`
}

// PUT /user
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing or invalid"})
		return
	}

	var req UpdateUserRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "errors": err.Error()})
		return
	}

	updated, err := h.Users.Update(c.Request.Context(), principal.UserID, model.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		Avatar:   req.Avatar,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": updated})
}

// DELETE /user
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing or invalid"})
		return
	}

	if err := h.Users.Delete(c.Request.Context(), principal.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
