package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"qkart/apierror"
	"qkart/middleware"
	"qkart/models"
)

type stubCarts struct {
	CartService
	err        error
	checkoutID string
}

func (s *stubCarts) GetCartByUser(context.Context, *models.User) (*models.Cart, error) {
	return nil, s.err
}

func (s *stubCarts) Checkout(_ context.Context, _ *models.User, checkoutID string) (*models.Order, error) {
	s.checkoutID = checkoutID
	if s.err != nil {
		return nil, s.err
	}
	return &models.Order{CheckoutID: checkoutID, Total: 10}, nil
}

func newCartRouter(carts CartService, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCartController(carts, log)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, &models.User{Email: "a@b.c"})
	})
	r.GET("/cart", h.GetCart)
	r.PUT("/cart/checkout", h.Checkout)
	return r
}

func TestRespondError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apierror.NotFound("User does not have a cart"), http.StatusNotFound, "User does not have a cart"},
		{apierror.BadRequest("Cart is empty"), http.StatusBadRequest, "Cart is empty"},
		{apierror.Conflict("Cart is busy, retry"), http.StatusConflict, "Cart is busy, retry"},
		{errors.New("socket closed"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		r := newCartRouter(&stubCarts{err: tc.err}, zerolog.Nop())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))

		assert.Equal(t, tc.status, w.Code)
		assert.JSONEq(t, `{"code":`+itoa(tc.status)+`,"message":"`+tc.msg+`"}`, w.Body.String())
	}
}

func TestRespondError_LogsInternalCause(t *testing.T) {
	var buf bytes.Buffer
	r := newCartRouter(&stubCarts{err: apierror.Internal("Failed to fetch cart", errors.New("socket closed"))}, zerolog.New(&buf))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "socket closed")
	assert.True(t, strings.Contains(buf.String(), "socket closed"))
}

func TestCheckout_PassesIdempotencyKey(t *testing.T) {
	carts := &stubCarts{}
	r := newCartRouter(carts, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/cart/checkout", nil)
	req.Header.Set(IdempotencyKeyHeader, "chk-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "chk-7", carts.checkoutID)
}

func itoa(n int) string {
	switch n {
	case http.StatusNotFound:
		return "404"
	case http.StatusBadRequest:
		return "400"
	case http.StatusConflict:
		return "409"
	default:
		return "500"
	}
}
