package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"qkart/models"
)

type UserService interface {
	SetAddress(ctx context.Context, user *models.User, address string) (*models.User, error)
}

type UserController struct {
	users UserService
	log   zerolog.Logger
}

func NewUserController(users UserService, log zerolog.Logger) *UserController {
	return &UserController{users: users, log: log}
}

// GetProfile returns the caller. With ?q=address only the address is sent.
func (h *UserController) GetProfile(c *gin.Context) {
	user := mustUser(c)
	if c.Query("q") == "address" {
		c.JSON(http.StatusOK, gin.H{"address": user.Address})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserController) SetAddress(c *gin.Context) {
	var input struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c, "address is required")
		return
	}

	user, err := h.users.SetAddress(c.Request.Context(), mustUser(c), input.Address)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": user.Address})
}
