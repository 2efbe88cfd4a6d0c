package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"qkart/apierror"
	"qkart/middleware"
	"qkart/models"
)

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps the error kind to a status and writes {code, message}.
// Server-side failures are logged with their cause; the client only sees the
// message.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	apiErr := apierror.From(err)
	status := apiErr.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(apiErr.Err).
			Str("request_id", c.GetString(middleware.ContextRequestIDKey)).
			Msg(apiErr.Message)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorBody{Code: status, Message: apiErr.Message})
}

func badInput(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Code: http.StatusBadRequest, Message: msg})
}

// mustUser returns the caller set by the auth middleware. Routes that use it
// are always mounted behind that middleware.
func mustUser(c *gin.Context) *models.User {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		panic("controllers: route mounted without auth middleware")
	}
	return user
}
