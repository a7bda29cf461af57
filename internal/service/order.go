package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"joyeria-checkout/internal/apperr"
	"joyeria-checkout/internal/builder"
	"joyeria-checkout/internal/currency"
	"joyeria-checkout/internal/model"
	"joyeria-checkout/internal/repository"
	"joyeria-checkout/internal/shipping"
)

const persistenceUserMsg = "your payment was received but we could not record the order, please contact support"

type OrderService interface {
	CreateOrder(ctx context.Context, details model.PaymentDetails, items []model.CheckoutItem, customer model.CustomerInfo, address *model.ShippingAddress) (*model.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	List(ctx context.Context, limit int) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, next model.OrderStatus) (*model.Order, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	resolver  *shipping.Resolver
	log       *logrus.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, resolver *shipping.Resolver, log *logrus.Logger) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
		resolver:  resolver,
		log:       log,
	}
}

// CreateOrder records a captured/approved payment exactly once. The provider
// payment id is the idempotency key: a duplicate webhook delivery or a second
// pass through the success redirect returns the already-persisted order.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, details model.PaymentDetails, items []model.CheckoutItem, customer model.CustomerInfo, address *model.ShippingAddress) (*model.Order, error) {
	paymentID := details.PaymentID()
	if paymentID == "" {
		return nil, apperr.Validation("payment id is required")
	}
	if len(items) == 0 {
		return nil, apperr.Validation("cart is empty")
	}

	existing, err := s.orderRepo.FindByPaymentID(ctx, paymentID)
	if err == nil {
		s.log.WithFields(logrus.Fields{
			"payment_id":   paymentID,
			"order_number": existing.OrderNumber,
		}).Info("duplicate order creation, returning existing order")
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.KindPersistence, persistenceUserMsg,
			fmt.Errorf("lookup order by payment id: %w", err))
	}

	// Subtotal is recomputed from the items; a client-supplied total is never
	// trusted. Amounts are kept in the order's own currency.
	toOrderCurrency := func(pen decimal.Decimal) decimal.Decimal {
		if details.Currency() == model.CurrencyUSD {
			return currency.Round2(currency.ToUSD(pen))
		}
		return currency.Round2(pen)
	}

	subtotalPEN := decimal.Zero
	orderItems := make([]model.OrderItem, len(items))
	subtotal := decimal.Zero
	for i, item := range items {
		subtotalPEN = subtotalPEN.Add(item.LineTotal())

		unit := toOrderCurrency(item.UnitPrice)
		line := unit.Mul(decimal.NewFromInt32(item.Quantity))
		subtotal = subtotal.Add(line)

		orderItems[i] = model.OrderItem{
			ProductName: item.Title,
			SKU:         optional(item.SKU),
			ImageURL:    optional(item.ImageURL),
			Variant:     optional(item.Variant),
			UnitPrice:   unit,
			Quantity:    item.Quantity,
			Subtotal:    line,
		}
	}

	// Free-shipping eligibility always comes from the PEN subtotal, then the
	// cost is expressed in the order currency.
	shippingCost := toOrderCurrency(s.resolver.Cost(ctx, subtotalPEN))
	tax := decimal.Zero
	total := subtotal.Add(shippingCost).Add(tax)

	now := time.Now()
	order := &model.Order{
		OrderNumber:      builder.NewOrderNumber(details.Method()),
		PaymentID:        paymentID,
		CustomerEmail:    customer.Email,
		CustomerName:     customer.Name,
		CustomerPhone:    optional(customer.Phone),
		CustomerDNI:      optional(customer.DNI),
		Subtotal:         subtotal,
		ShippingCost:     shippingCost,
		Tax:              tax,
		Total:            total,
		Currency:         details.Currency(),
		Status:           model.OrderStatusPending,
		PaymentStatus:    details.PaymentStatus(),
		PaymentMethod:    details.Method(),
		PaymentReference: optional(details.Reference()),
		Metadata:         details.Raw(),
		PaidAt:           now,
	}
	if address != nil {
		order.ShippingStreet = optional(address.Street)
		order.ShippingNumber = optional(address.Number)
		order.ShippingCity = optional(address.City)
		order.ShippingState = optional(address.State)
		order.ShippingZip = optional(address.ZipCode)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Two near-simultaneous deliveries race on the payment_id unique
		// constraint; the loser treats the conflict as "already exists".
		if winner, findErr := s.orderRepo.FindByPaymentID(ctx, paymentID); findErr == nil {
			s.log.WithField("payment_id", paymentID).
				Info("lost creation race, returning existing order")
			return winner, nil
		}
		return nil, apperr.Wrap(apperr.KindPersistence, persistenceUserMsg,
			fmt.Errorf("store order: %w", err))
	}

	// Item snapshots are written best effort: a captured payment must never
	// be lost because one snapshot failed. Failures are logged and skipped.
	persisted := make([]model.OrderItem, 0, len(orderItems))
	for i := range orderItems {
		orderItems[i].OrderID = order.ID
		if err := s.orderRepo.CreateItem(ctx, &orderItems[i]); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"order_number": order.OrderNumber,
				"product":      orderItems[i].ProductName,
			}).Error("order item write failed, skipping")
			continue
		}
		persisted = append(persisted, orderItems[i])
	}
	order.Items = persisted

	return order, nil
}

func (s *orderServiceImpl) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	return s.orderRepo.FindByOrderNumber(ctx, orderNumber)
}

func (s *orderServiceImpl) List(ctx context.Context, limit int) ([]*model.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.orderRepo.List(ctx, limit)
}

// UpdateStatus moves the fulfillment state forward only. Payment fields are
// never touched here.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID uint, next model.OrderStatus) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, apperr.Validation(fmt.Sprintf(
			"order cannot move from %s to %s", order.Status, next))
	}

	now := time.Now()
	updates := map[string]interface{}{"status": next}
	switch next {
	case model.OrderStatusShipped:
		updates["shipped_at"] = now
	case model.OrderStatusDelivered:
		updates["delivered_at"] = now
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, updates); err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(ctx, orderID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
