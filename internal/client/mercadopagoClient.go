package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"joyeria-checkout/internal/apperr"
	"joyeria-checkout/internal/config"
	"joyeria-checkout/internal/model"
)

type MercadoPagoClient interface {
	CreatePreference(ctx context.Context, req *model.PreferenceRequest) (*model.PreferenceResult, error)
	GetPayment(ctx context.Context, paymentID string) (*model.MercadoPagoPayment, error)
	ProcessCallback(params url.Values) *CallbackStatus
}

// CallbackStatus is the best-effort payment state reconstructed from redirect
// query parameters when a direct lookup is not possible. Query params are a
// spoofable hint, not an authoritative source; callers confirm through
// GetPayment whenever a payment id is present.
type CallbackStatus struct {
	PaymentID         string
	Status            string
	ExternalReference string
}

type mercadoPagoClientImpl struct {
	httpClient  *http.Client
	functionURL string
	token       string
	log         *logrus.Logger
}

func NewMercadoPagoClient(cfg *config.MercadoPago, log *logrus.Logger) MercadoPagoClient {
	return &mercadoPagoClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		functionURL: cfg.FunctionURL,
		token:       cfg.Token,
		log:         log,
	}
}

func (c *mercadoPagoClientImpl) checkConfig() error {
	if c.functionURL == "" || c.token == "" {
		return apperr.Wrap(apperr.KindConfiguration,
			"checkout is temporarily unavailable",
			fmt.Errorf("mercadopago function url or token missing"))
	}
	return nil
}

func (c *mercadoPagoClientImpl) CreatePreference(ctx context.Context, prefReq *model.PreferenceRequest) (*model.PreferenceResult, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(prefReq)
	if err != nil {
		return nil, fmt.Errorf("marshal preference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.functionURL+"/create-preference", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError("mercadopago", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, mapProviderStatus(c.log, "mercadopago", resp.StatusCode, b)
	}

	var result model.PreferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode preference response: %w", err)
	}

	return &result, nil
}

func (c *mercadoPagoClientImpl) GetPayment(ctx context.Context, paymentID string) (*model.MercadoPagoPayment, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/get-payment/%s", c.functionURL, paymentID), nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError("mercadopago", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, mapProviderStatus(c.log, "mercadopago", resp.StatusCode, b)
	}

	var payment model.MercadoPagoPayment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}

	return &payment, nil
}

// ProcessCallback tolerates partial or missing parameters: the user may land
// back from the hosted page with anything. Returns nil when nothing usable is
// present, never panics inside the redirect handler.
func (c *mercadoPagoClientImpl) ProcessCallback(params url.Values) *CallbackStatus {
	if params == nil {
		return nil
	}

	paymentID := params.Get("payment_id")
	if paymentID == "" {
		paymentID = params.Get("collection_id")
	}
	status := params.Get("status")
	if status == "" {
		status = params.Get("collection_status")
	}
	ref := params.Get("external_reference")

	if paymentID == "" && status == "" && ref == "" {
		return nil
	}

	return &CallbackStatus{
		PaymentID:         paymentID,
		Status:            status,
		ExternalReference: ref,
	}
}
