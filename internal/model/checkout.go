package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"joyeria-checkout/internal/apperr"
)

// CheckoutItem is one cart line at checkout time. Prices are PEN.
type CheckoutItem struct {
	ID          string
	Title       string
	UnitPrice   decimal.Decimal
	Quantity    int32
	Description string
	ImageURL    string
	SKU         string
	Variant     string
}

func (i CheckoutItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}

type CustomerInfo struct {
	Email string
	Name  string
	Phone string
	// DNI is optional; its absence never blocks checkout, it only lowers the
	// approval likelihood on the MercadoPago side.
	DNI string
}

type ShippingAddress struct {
	Street  string
	Number  string
	City    string
	State   string
	ZipCode string
}

// CheckoutPayload is the normalized cart state handed to the builders. It is
// ephemeral and never persisted directly.
type CheckoutPayload struct {
	Items    []CheckoutItem
	Customer CustomerInfo
	Address  *ShippingAddress
}

// Subtotal sums the cart lines in PEN, before shipping.
func (p *CheckoutPayload) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Validate checks the payload invariants before anything touches the network.
func (p *CheckoutPayload) Validate() error {
	if len(p.Items) == 0 {
		return apperr.Validation("cart is empty")
	}
	for i, item := range p.Items {
		if !item.UnitPrice.IsPositive() {
			return apperr.Validation(fmt.Sprintf("item %q has a non-positive price", itemLabel(item, i)))
		}
		if item.Quantity < 1 {
			return apperr.Validation(fmt.Sprintf("item %q has an invalid quantity", itemLabel(item, i)))
		}
	}
	if p.Customer.Email == "" {
		return apperr.Validation("customer email is required")
	}
	if p.Customer.Name == "" {
		return apperr.Validation("customer name is required")
	}
	return nil
}

func itemLabel(item CheckoutItem, idx int) string {
	if item.Title != "" {
		return item.Title
	}
	return fmt.Sprintf("#%d", idx)
}
