package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:     http.StatusNotFound,
		KindBadRequest:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindConflict:     http.StatusConflict,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestFrom_UnwrapsWrapped(t *testing.T) {
	err := fmt.Errorf("checkout: %w", BadRequest("Cart is empty"))

	got := From(err)
	assert.Equal(t, KindBadRequest, got.Kind)
	assert.Equal(t, "Cart is empty", got.Message)
}

func TestFrom_PlainErrorIsInternal(t *testing.T) {
	cause := errors.New("connection reset")

	got := From(cause)
	assert.Equal(t, KindInternal, got.Kind)
	assert.ErrorIs(t, got, cause)
	assert.NotContains(t, got.Message, "connection reset")
}

func TestError_String(t *testing.T) {
	assert.Equal(t, "NotFound: User does not have a cart", NotFound("User does not have a cart").Error())
	assert.Equal(t, "InternalError: save failed: boom", Internal("save failed", errors.New("boom")).Error())
}
