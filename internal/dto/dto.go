package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"joyeria-checkout/internal/model"
)

type CheckoutItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title" validate:"required"`
	UnitPrice   float64 `json:"unit_price" validate:"gt=0"`
	Quantity    int32   `json:"quantity" validate:"gte=1"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	SKU         string  `json:"sku"`
	Variant     string  `json:"variant"`
}

type Customer struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	DNI   string `json:"dni"`
}

type Address struct {
	Street  string `json:"street"`
	Number  string `json:"number"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type CheckoutRequest struct {
	Items    []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	Customer Customer       `json:"customer" validate:"required"`
	Address  *Address       `json:"address"`
}

// ToPayload normalizes the request into the domain payload the builders
// consume. Prices arrive as JSON numbers and are fixed into decimals here.
func (r *CheckoutRequest) ToPayload() *model.CheckoutPayload {
	items := make([]model.CheckoutItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = model.CheckoutItem{
			ID:          item.ID,
			Title:       item.Title,
			UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
			Quantity:    item.Quantity,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			SKU:         item.SKU,
			Variant:     item.Variant,
		}
	}

	payload := &model.CheckoutPayload{
		Items: items,
		Customer: model.CustomerInfo{
			Email: r.Customer.Email,
			Name:  r.Customer.Name,
			Phone: r.Customer.Phone,
			DNI:   r.Customer.DNI,
		},
	}
	if r.Address != nil {
		payload.Address = &model.ShippingAddress{
			Street:  r.Address.Street,
			Number:  r.Address.Number,
			City:    r.Address.City,
			State:   r.Address.State,
			ZipCode: r.Address.ZipCode,
		}
	}

	return payload
}

type CheckoutResponse struct {
	ProviderID        string `json:"provider_id"` // preference id or paypal order id
	RedirectURL       string `json:"redirect_url"`
	ExternalReference string `json:"external_reference"`
}

type ConfirmMercadoPagoRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
	CheckoutRequest
}

type ConfirmPaypalRequest struct {
	CheckoutRequest
}

// ConfirmResponse signals the one moment the UI may clear the cart.
type ConfirmResponse struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
	ClearCart   bool   `json:"clear_cart"`
}

type CallbackResponse struct {
	PaymentID         string `json:"payment_id"`
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
	// Authoritative is false when the status comes from redirect params only.
	Authoritative bool `json:"authoritative"`
}

// PaypalReturnResponse tells the confirmation page which provider order to
// capture. Approval happened on PayPal's side; the capture itself has not run
// yet and still has to be posted with the cart.
type PaypalReturnResponse struct {
	ProviderOrderID string `json:"provider_order_id"`
	Approved        bool   `json:"approved"`
}

type ShippingSettingsRequest struct {
	FreeShippingThreshold float64 `json:"free_shipping_threshold" validate:"gte=0"`
	StandardShippingCost  float64 `json:"standard_shipping_cost" validate:"gte=0"`
}

type ShippingSettingsResponse struct {
	FreeShippingThreshold string `json:"free_shipping_threshold"`
	StandardShippingCost  string `json:"standard_shipping_cost"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

type OrderItemResponse struct {
	ProductName string `json:"product_name"`
	SKU         string `json:"sku,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Variant     string `json:"variant,omitempty"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int32  `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

type OrderResponse struct {
	OrderID       uint                `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	CustomerEmail string              `json:"customer_email"`
	CustomerName  string              `json:"customer_name"`
	Subtotal      string              `json:"subtotal"`
	ShippingCost  string              `json:"shipping_cost"`
	Tax           string              `json:"tax"`
	Total         string              `json:"total"`
	Currency      string              `json:"currency"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentMethod string              `json:"payment_method"`
	CreatedAt     time.Time           `json:"created_at"`
	PaidAt        time.Time           `json:"paid_at"`
	ShippedAt     *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
	Items         []OrderItemResponse `json:"items"`
}

func NewOrderResponse(order *model.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ProductName: item.ProductName,
			SKU:         deref(item.SKU),
			ImageURL:    deref(item.ImageURL),
			Variant:     deref(item.Variant),
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal.StringFixed(2),
		}
	}

	return &OrderResponse{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerEmail: order.CustomerEmail,
		CustomerName:  order.CustomerName,
		Subtotal:      order.Subtotal.StringFixed(2),
		ShippingCost:  order.ShippingCost.StringFixed(2),
		Tax:           order.Tax.StringFixed(2),
		Total:         order.Total.StringFixed(2),
		Currency:      order.Currency,
		Status:        string(order.Status),
		PaymentStatus: order.PaymentStatus,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
		PaidAt:        order.PaidAt,
		ShippedAt:     order.ShippedAt,
		DeliveredAt:   order.DeliveredAt,
		Items:         items,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
