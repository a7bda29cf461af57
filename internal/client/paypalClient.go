package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"joyeria-checkout/internal/apperr"
	"joyeria-checkout/internal/config"
	"joyeria-checkout/internal/model"
)

type PaypalClient interface {
	CreateOrder(ctx context.Context, req *model.PaypalOrderRequest) (*CreateOrderResponse, error)
	CaptureOrder(ctx context.Context, orderID string) (*model.PaypalCaptureResult, error)
}

type CreateOrderResponse struct {
	OrderID    string
	ApproveURL string
}

type paypalClientImpl struct {
	httpClient  *http.Client
	functionURL string
	token       string
	log         *logrus.Logger
}

func NewPaypalClient(cfg *config.Paypal, log *logrus.Logger) PaypalClient {
	return &paypalClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		functionURL: cfg.FunctionURL,
		token:       cfg.Token,
		log:         log,
	}
}

func (c *paypalClientImpl) checkConfig() error {
	if c.functionURL == "" || c.token == "" {
		return apperr.Wrap(apperr.KindConfiguration,
			"checkout is temporarily unavailable",
			fmt.Errorf("paypal function url or token missing"))
	}
	return nil
}

func (c *paypalClientImpl) CreateOrder(ctx context.Context, orderReq *model.PaypalOrderRequest) (*CreateOrderResponse, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.functionURL+"/create-order", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError("paypal", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, mapProviderStatus(c.log, "paypal", resp.StatusCode, b)
	}

	var result model.PaypalOrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	return &CreateOrderResponse{
		OrderID:    result.ID,
		ApproveURL: extractApproveURL(result.Links),
	}, nil
}

func (c *paypalClientImpl) CaptureOrder(ctx context.Context, orderID string) (*model.PaypalCaptureResult, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/capture-order/%s", c.functionURL, orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError("paypal", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, mapProviderStatus(c.log, "paypal", resp.StatusCode, b)
	}

	var result model.PaypalCaptureResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode capture response: %w", err)
	}

	return &result, nil
}

func extractApproveURL(links []model.PaypalLink) string {
	for _, link := range links {
		if link.Rel == "approve" {
			return link.Href
		}
	}
	return ""
}
