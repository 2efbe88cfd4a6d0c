package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"qkart/apierror"
	"qkart/models"
	"qkart/services"
)

const (
	ContextUserKey  = "user"
	ContextTokenKey = "token"
)

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*services.Claims, error)
}

type UserLoader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthMiddleware accepts "Authorization: Bearer <jwt>", rejects revoked
// tokens and loads the caller into the gin context.
func AuthMiddleware(verifier TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			abort(c, apierror.Unauthorized("Please authenticate"))
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			abort(c, err)
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if apierror.KindOf(err) == apierror.KindNotFound {
				err = apierror.Unauthorized("Please authenticate")
			}
			abort(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "Access denied: admin only"})
			return
		}
		c.Next()
	}
}

func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func abort(c *gin.Context, err error) {
	apiErr := apierror.From(err)
	status := apiErr.Kind.HTTPStatus()
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"code": status, "message": apiErr.Message})
}
