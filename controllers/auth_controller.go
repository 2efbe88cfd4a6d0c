package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"qkart/middleware"
	"qkart/models"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
}

type AuthController struct {
	auth AuthService
	log  zerolog.Logger
}

func NewAuthController(auth AuthService, log zerolog.Logger) *AuthController {
	return &AuthController{auth: auth, log: log}
}

func (h *AuthController) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c, "name, a valid email and password are required")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c, "email and password are required")
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *AuthController) Logout(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		badInput(c, "Token required")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
