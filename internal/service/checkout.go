package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"joyeria-checkout/internal/apperr"
	"joyeria-checkout/internal/builder"
	"joyeria-checkout/internal/client"
	"joyeria-checkout/internal/dto"
	"joyeria-checkout/internal/model"
	"joyeria-checkout/internal/shipping"
)

type CheckoutService interface {
	CheckoutMercadoPago(ctx context.Context, payload *model.CheckoutPayload) (*dto.CheckoutResponse, error)
	CheckoutPaypal(ctx context.Context, payload *model.CheckoutPayload) (*dto.CheckoutResponse, error)
	MercadoPagoCallback(ctx context.Context, params url.Values) *dto.CallbackResponse
	ConfirmMercadoPago(ctx context.Context, paymentID string, payload *model.CheckoutPayload) (*model.Order, error)
	ConfirmPaypal(ctx context.Context, providerOrderID string, payload *model.CheckoutPayload) (*model.Order, error)
}

type checkoutServiceImpl struct {
	resolver     *shipping.Resolver
	mpBuilder    *builder.MercadoPagoBuilder
	ppBuilder    *builder.PaypalBuilder
	mpClient     client.MercadoPagoClient
	paypalClient client.PaypalClient
	orderService OrderService
	log          *logrus.Logger
}

func NewCheckoutService(
	resolver *shipping.Resolver,
	mpBuilder *builder.MercadoPagoBuilder,
	ppBuilder *builder.PaypalBuilder,
	mpClient client.MercadoPagoClient,
	paypalClient client.PaypalClient,
	orderService OrderService,
	log *logrus.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		resolver:     resolver,
		mpBuilder:    mpBuilder,
		ppBuilder:    ppBuilder,
		mpClient:     mpClient,
		paypalClient: paypalClient,
		orderService: orderService,
		log:          log,
	}
}

// CheckoutMercadoPago builds and creates a PEN preference. Validation happens
// entirely before the provider is contacted, so a doomed preference is never
// created.
func (s *checkoutServiceImpl) CheckoutMercadoPago(ctx context.Context, payload *model.CheckoutPayload) (*dto.CheckoutResponse, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	shippingCost := s.resolver.Cost(ctx, payload.Subtotal())

	req, ref, err := s.mpBuilder.Build(payload, shippingCost)
	if err != nil {
		return nil, err
	}

	result, err := s.mpClient.CreatePreference(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"preference_id":      result.ID,
		"external_reference": ref,
	}).Info("mercadopago preference created")

	return &dto.CheckoutResponse{
		ProviderID:        result.ID,
		RedirectURL:       result.InitPoint,
		ExternalReference: ref,
	}, nil
}

// CheckoutPaypal builds and creates a USD order. Shipping eligibility is
// decided on the PEN subtotal before any conversion.
func (s *checkoutServiceImpl) CheckoutPaypal(ctx context.Context, payload *model.CheckoutPayload) (*dto.CheckoutResponse, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	shippingCost := s.resolver.Cost(ctx, payload.Subtotal())

	req, ref, err := s.ppBuilder.Build(payload, shippingCost)
	if err != nil {
		return nil, err
	}

	result, err := s.paypalClient.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"paypal_order_id":    result.OrderID,
		"external_reference": ref,
	}).Info("paypal order created")

	return &dto.CheckoutResponse{
		ProviderID:        result.OrderID,
		RedirectURL:       result.ApproveURL,
		ExternalReference: ref,
	}, nil
}

// MercadoPagoCallback resolves the state of a payment the user just returned
// from. When the redirect carries a payment id the status comes from an
// authoritative lookup; otherwise the redirect params serve as a degraded
// hint. It never fails the redirect handler.
func (s *checkoutServiceImpl) MercadoPagoCallback(ctx context.Context, params url.Values) *dto.CallbackResponse {
	hint := s.mpClient.ProcessCallback(params)
	if hint == nil {
		return &dto.CallbackResponse{Status: "unknown"}
	}

	if hint.PaymentID != "" {
		payment, err := s.mpClient.GetPayment(ctx, hint.PaymentID)
		if err == nil {
			return &dto.CallbackResponse{
				PaymentID:         strconv.FormatInt(payment.ID, 10),
				Status:            payment.Status,
				ExternalReference: payment.ExternalReference,
				Authoritative:     true,
			}
		}
		s.log.WithError(err).WithField("payment_id", hint.PaymentID).
			Warn("authoritative payment lookup failed, falling back to redirect params")
	}

	return &dto.CallbackResponse{
		PaymentID:         hint.PaymentID,
		Status:            hint.Status,
		ExternalReference: hint.ExternalReference,
	}
}

// ConfirmMercadoPago records the order for an approved payment. The status is
// always re-checked against the provider; client-supplied status params are
// never trusted for persistence.
func (s *checkoutServiceImpl) ConfirmMercadoPago(ctx context.Context, paymentID string, payload *model.CheckoutPayload) (*model.Order, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	payment, err := s.mpClient.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status != "approved" {
		return nil, apperr.Validation(fmt.Sprintf("payment is %s, not approved", payment.Status))
	}

	raw, _ := json.Marshal(payment)
	details := model.MercadoPagoDetails{
		ID:                strconv.FormatInt(payment.ID, 10),
		Status:            payment.Status,
		ExternalReference: payment.ExternalReference,
		RawPayload:        string(raw),
	}

	return s.orderService.CreateOrder(ctx, details, payload.Items, payload.Customer, payload.Address)
}

// ConfirmPaypal captures the approved provider order and records it. Only a
// COMPLETED capture becomes an order; capture precedes persistence, and a
// persistence failure after a successful capture is a PersistenceError, never
// a payment failure.
func (s *checkoutServiceImpl) ConfirmPaypal(ctx context.Context, providerOrderID string, payload *model.CheckoutPayload) (*model.Order, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	capture, err := s.paypalClient.CaptureOrder(ctx, providerOrderID)
	if err != nil {
		return nil, err
	}

	captureID, reference, status := extractCapture(capture)
	if captureID == "" {
		return nil, apperr.Wrap(apperr.KindProvider,
			"the payment could not be confirmed, please contact support",
			fmt.Errorf("paypal capture result for order %s has no capture id", providerOrderID))
	}
	if status != "COMPLETED" {
		return nil, apperr.Validation(fmt.Sprintf("payment capture is %s, not completed", status))
	}

	raw, _ := json.Marshal(capture)
	details := model.PayPalDetails{
		CaptureID:         captureID,
		OrderID:           capture.ID,
		Status:            status,
		ExternalReference: reference,
		RawPayload:        string(raw),
	}

	return s.orderService.CreateOrder(ctx, details, payload.Items, payload.Customer, payload.Address)
}

func extractCapture(result *model.PaypalCaptureResult) (captureID, reference, status string) {
	status = result.Status
	for _, unit := range result.PurchaseUnits {
		if reference == "" {
			reference = unit.ReferenceID
		}
		for _, capture := range unit.Payments.Captures {
			if capture.ID != "" {
				captureID = capture.ID
				if capture.Status != "" {
					status = capture.Status
				}
				return captureID, reference, status
			}
		}
	}
	return captureID, reference, status
}
