package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joyeria-checkout/internal/apperr"
	"joyeria-checkout/internal/config"
	"joyeria-checkout/internal/model"
)

func ppClientFor(url string) PaypalClient {
	return NewPaypalClient(&config.Paypal{FunctionURL: url, Token: "test-token"}, testLogger())
}

func TestPaypalCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create-order", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "5O190127TN364715T",
			"status": "CREATED",
			"links": [
				{"rel": "self", "href": "https://pp.example/orders/5O190127TN364715T"},
				{"rel": "approve", "href": "https://pp.example/checkoutnow?token=5O190127TN364715T"}
			]
		}`))
	}))
	defer srv.Close()

	resp, err := ppClientFor(srv.URL).CreateOrder(context.Background(), &model.PaypalOrderRequest{Intent: "CAPTURE"})
	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", resp.OrderID)
	assert.Equal(t, "https://pp.example/checkoutnow?token=5O190127TN364715T", resp.ApproveURL)
}

func TestPaypalCaptureOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/capture-order/5O190127TN364715T", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "5O190127TN364715T",
			"status": "COMPLETED",
			"purchase_units": [{
				"reference_id": "JOYA_1_abc",
				"payments": {"captures": [{"id": "3C679366HH908993F", "status": "COMPLETED", "final_capture": true, "amount": {"currency_code": "USD", "value": "26.70"}}]}
			}]
		}`))
	}))
	defer srv.Close()

	result, err := ppClientFor(srv.URL).CaptureOrder(context.Background(), "5O190127TN364715T")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", result.Status)
	require.Len(t, result.PurchaseUnits, 1)
	require.Len(t, result.PurchaseUnits[0].Payments.Captures, 1)
	assert.Equal(t, "3C679366HH908993F", result.PurchaseUnits[0].Payments.Captures[0].ID)
}

func TestPaypalCaptureOrderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := ppClientFor(srv.URL).CaptureOrder(context.Background(), "X")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindProvider))
	assert.Contains(t, apperr.UserMessage(err), "temporarily unavailable")
}

func TestPaypalMissingConfig(t *testing.T) {
	c := NewPaypalClient(&config.Paypal{FunctionURL: "http://x"}, testLogger())

	_, err := c.CreateOrder(context.Background(), &model.PaypalOrderRequest{})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConfiguration))
}
