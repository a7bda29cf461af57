package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paypalReturnContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPaypalReturnApproved(t *testing.T) {
	h := NewCheckoutHandler(nil, nil)
	c, rec := paypalReturnContext("/api/checkout/paypal/return?token=PP-1&PayerID=BUYER1")

	require.NoError(t, h.PaypalReturn(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"provider_order_id":"PP-1","approved":true}`, rec.Body.String())
}

func TestPaypalReturnWithoutPayer(t *testing.T) {
	h := NewCheckoutHandler(nil, nil)
	c, rec := paypalReturnContext("/api/checkout/paypal/return?token=PP-1")

	require.NoError(t, h.PaypalReturn(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"provider_order_id":"PP-1","approved":false}`, rec.Body.String())
}

func TestPaypalReturnMissingToken(t *testing.T) {
	h := NewCheckoutHandler(nil, nil)
	c, _ := paypalReturnContext("/api/checkout/paypal/return")

	err := h.PaypalReturn(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
