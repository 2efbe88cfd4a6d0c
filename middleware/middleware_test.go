package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qkart/apierror"
	"qkart/models"
	"qkart/services"
)

type stubVerifier struct {
	claims *services.Claims
	err    error
}

func (s stubVerifier) Verify(context.Context, string) (*services.Claims, error) {
	return s.claims, s.err
}

type stubUsers map[string]*models.User

func (s stubUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := s[email]; ok {
		return u, nil
	}
	return nil, apierror.NotFound("User not found")
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", append(handlers, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		if user != nil {
			c.String(http.StatusOK, user.Email)
			return
		}
		c.String(http.StatusOK, "ok")
	})...)
	return r
}

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	users := stubUsers{"a@b.c": {Email: "a@b.c", Role: models.RoleCustomer}}
	ok := stubVerifier{claims: &services.Claims{Email: "a@b.c"}}

	w := serve(newEngine(AuthMiddleware(ok, users)), "Bearer t0k3n")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@b.c", w.Body.String())

	for _, header := range []string{"", "t0k3n", "Bearer ", "Basic abc"} {
		w = serve(newEngine(AuthMiddleware(ok, users)), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}

	bad := stubVerifier{err: apierror.Unauthorized("Invalid or expired token")}
	w = serve(newEngine(AuthMiddleware(bad, users)), "Bearer t0k3n")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":401,"message":"Invalid or expired token"}`, w.Body.String())

	ghost := stubVerifier{claims: &services.Claims{Email: "ghost@b.c"}}
	w = serve(newEngine(AuthMiddleware(ghost, users)), "Bearer t0k3n")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	users := stubUsers{
		"a@b.c":     {Email: "a@b.c", Role: models.RoleCustomer},
		"admin@b.c": {Email: "admin@b.c", Role: models.RoleAdmin},
	}

	customer := stubVerifier{claims: &services.Claims{Email: "a@b.c"}}
	w := serve(newEngine(AuthMiddleware(customer, users), AdminMiddleware()), "Bearer x")
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := stubVerifier{claims: &services.Claims{Email: "admin@b.c"}}
	w = serve(newEngine(AuthMiddleware(admin, users), AdminMiddleware()), "Bearer x")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := serve(r, "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestLoggerAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(log), Recovery(log))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "request completed")
	assert.Contains(t, buf.String(), `"status":500`)
}
