package builder

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"joyeria-checkout/internal/apperr"
	"joyeria-checkout/internal/currency"
	"joyeria-checkout/internal/model"
)

const paypalItemNameMaxLen = 127

var (
	paypalMinItemPrice  = decimal.RequireFromString("0.01")
	paypalMinOrderTotal = decimal.RequireFromString("1.00")
)

// PaypalBuilder turns a checkout payload into a create-order request. The
// request recomputes its own USD breakdown from the PEN payload; it does not
// have to mirror the MercadoPago one bit for bit, only stay internally
// consistent (item_total + shipping + tax == amount) and clear PayPal's own
// minimums. Free-shipping eligibility was already decided on the PEN subtotal
// before this builder runs.
type PaypalBuilder struct {
	baseURL string
	log     *logrus.Logger
	now     func() time.Time
}

func NewPaypalBuilder(baseURL string, log *logrus.Logger) *PaypalBuilder {
	return &PaypalBuilder{baseURL: baseURL, log: log, now: time.Now}
}

func (b *PaypalBuilder) Build(payload *model.CheckoutPayload, shippingCostPEN decimal.Decimal) (*model.PaypalOrderRequest, string, error) {
	if err := payload.Validate(); err != nil {
		return nil, "", err
	}

	ref := NewExternalReference()

	items := make([]model.PaypalItem, 0, len(payload.Items))
	itemTotal := decimal.Zero
	for _, item := range payload.Items {
		price := currency.Round2(currency.ToUSD(item.UnitPrice))
		if price.LessThan(paypalMinItemPrice) {
			b.log.WithFields(logrus.Fields{
				"item":    item.Title,
				"price":   price.StringFixed(2),
				"clamped": paypalMinItemPrice.StringFixed(2),
			}).Warn("item price below provider minimum, clamping up")
			price = paypalMinItemPrice
		}

		items = append(items, model.PaypalItem{
			Name:        truncate(item.Title, paypalItemNameMaxLen),
			Description: truncate(item.Description, paypalItemNameMaxLen),
			SKU:         item.SKU,
			UnitAmount: model.PaypalMoney{
				CurrencyCode: model.CurrencyUSD,
				Value:        price.StringFixed(2),
			},
			Quantity: fmt.Sprintf("%d", item.Quantity),
		})
		itemTotal = itemTotal.Add(price.Mul(decimal.NewFromInt32(item.Quantity)))
	}

	shipping := currency.Round2(currency.ToUSD(shippingCostPEN))
	tax := decimal.Zero
	total := itemTotal.Add(shipping).Add(tax)

	if total.LessThan(paypalMinOrderTotal) {
		return nil, "", apperr.Validation(fmt.Sprintf(
			"order total %s USD is below the %s USD minimum",
			total.StringFixed(2), paypalMinOrderTotal.StringFixed(2)))
	}

	unit := model.PaypalPurchaseUnit{
		ReferenceID: ref,
		CustomID:    ref,
		Description: "Joyeria order",
		Amount: model.PaypalAmount{
			CurrencyCode: model.CurrencyUSD,
			Value:        total.StringFixed(2),
			Breakdown: &model.PaypalAmountBreakdown{
				ItemTotal: &model.PaypalMoney{CurrencyCode: model.CurrencyUSD, Value: itemTotal.StringFixed(2)},
				Shipping:  &model.PaypalMoney{CurrencyCode: model.CurrencyUSD, Value: shipping.StringFixed(2)},
				TaxTotal:  &model.PaypalMoney{CurrencyCode: model.CurrencyUSD, Value: tax.StringFixed(2)},
			},
		},
		Items: items,
	}

	// The order body has no metadata slot, so the audit fields the
	// MercadoPago preference carries inline go to the log instead.
	b.log.WithField("external_reference", ref).
		WithFields(buildMetadata(b.now(), payload, itemTotal, shipping)).
		Info("paypal order audit")

	req := &model.PaypalOrderRequest{
		Intent:        "CAPTURE",
		PurchaseUnits: []model.PaypalPurchaseUnit{unit},
		ApplicationContext: &model.PaypalApplicationContext{
			BrandName:  "Joyeria",
			ReturnURL:  b.baseURL + "/api/checkout/paypal/return",
			CancelURL:  b.baseURL + "/checkout",
			UserAction: "PAY_NOW",
		},
	}

	return req, ref, nil
}
