package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// CanTransitionTo enforces the forward-only lifecycle. Cancel is allowed from
// any non-terminal state; nothing leaves delivered or cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == OrderStatusDelivered || s == OrderStatusCancelled {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	order := map[OrderStatus]int{
		OrderStatusPending:    0,
		OrderStatusProcessing: 1,
		OrderStatusShipped:    2,
		OrderStatusDelivered:  3,
	}
	from, ok := order[s]
	if !ok {
		return false
	}
	to, ok := order[next]
	if !ok {
		return false
	}
	return to == from+1
}

const (
	PaymentMethodMercadoPago = "mercadopago"
	PaymentMethodPaypal      = "paypal"

	CurrencyPEN = "PEN"
	CurrencyUSD = "USD"
)

// Order is the system of record for a completed transaction. PaymentID is the
// idempotency key: a second create with the same id must return this row.
type Order struct {
	ID          uint   `gorm:"primaryKey"`
	OrderNumber string `gorm:"size:64;uniqueIndex;not null"`
	PaymentID   string `gorm:"size:128;uniqueIndex;not null"`

	CustomerEmail string  `gorm:"size:255;index;not null"`
	CustomerName  string  `gorm:"size:255;not null"`
	CustomerPhone *string `gorm:"size:32"`
	CustomerDNI   *string `gorm:"size:16"`

	ShippingStreet *string `gorm:"size:255"`
	ShippingNumber *string `gorm:"size:32"`
	ShippingCity   *string `gorm:"size:128"`
	ShippingState  *string `gorm:"size:128"`
	ShippingZip    *string `gorm:"size:16"`

	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency     string          `gorm:"size:8;not null"` // PEN or USD

	Status           OrderStatus `gorm:"size:32;index;not null"`
	PaymentStatus    string      `gorm:"size:32;not null"`
	PaymentMethod    string      `gorm:"size:32;index;not null"`
	PaymentReference *string     `gorm:"size:128"` // external reference from the checkout attempt

	// Raw provider payload, kept for audit.
	Metadata string `gorm:"type:text"`

	CreatedAt   time.Time
	PaidAt      time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots the product at time of purchase; never re-derived from
// the live catalog.
type OrderItem struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"index;not null"`

	ProductName string  `gorm:"size:255;not null"`
	SKU         *string `gorm:"size:64"`
	ImageURL    *string `gorm:"size:512"`
	Variant     *string `gorm:"size:255"`

	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int32           `gorm:"not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"` // unit price × quantity

	CreatedAt time.Time
}

// ShippingSetting holds the free-shipping threshold and flat cost, both in PEN.
type ShippingSetting struct {
	ID                    uint            `gorm:"primaryKey"`
	FreeShippingThreshold decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StandardShippingCost  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UpdatedAt             time.Time
}
