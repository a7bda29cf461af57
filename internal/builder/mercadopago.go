package builder

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"joyeria-checkout/internal/apperr"
	"joyeria-checkout/internal/currency"
	"joyeria-checkout/internal/model"
)

// MercadoPago field limits and minimums. The clamped price is what gets
// charged; items are never dropped and checkout never fails on a clamp.
const (
	mpTitleMaxLen = 256
	// Preference TTL; MercadoPago enforces the expiry, we only declare it.
	mpPreferenceTTL = 24 * time.Hour
)

var (
	mpMinItemPrice  = decimal.RequireFromString("1.00")
	mpMinOrderTotal = decimal.RequireFromString("5.00")
)

// MercadoPagoBuilder turns a checkout payload into a create-preference
// request, denominated in PEN.
type MercadoPagoBuilder struct {
	baseURL string
	log     *logrus.Logger
	now     func() time.Time
}

func NewMercadoPagoBuilder(baseURL string, log *logrus.Logger) *MercadoPagoBuilder {
	return &MercadoPagoBuilder{
		baseURL: baseURL,
		log:     log,
		now:     time.Now,
	}
}

// Build validates totals and assembles the preference request. The returned
// string is the freshly generated external reference. A minimum-total
// violation is a ValidationError raised before any network call.
func (b *MercadoPagoBuilder) Build(payload *model.CheckoutPayload, shippingCost decimal.Decimal) (*model.PreferenceRequest, string, error) {
	if err := payload.Validate(); err != nil {
		return nil, "", err
	}

	ref := NewExternalReference()

	items := make([]model.PreferenceItem, 0, len(payload.Items)+1)
	itemTotal := decimal.Zero
	for _, item := range payload.Items {
		price := currency.Round2(item.UnitPrice)
		if price.LessThan(mpMinItemPrice) {
			b.log.WithFields(logrus.Fields{
				"item":    item.Title,
				"price":   price.StringFixed(2),
				"clamped": mpMinItemPrice.StringFixed(2),
			}).Warn("item price below provider minimum, clamping up")
			price = mpMinItemPrice
		}

		items = append(items, model.PreferenceItem{
			ID:          item.ID,
			Title:       truncate(item.Title, mpTitleMaxLen),
			Description: truncate(item.Description, mpTitleMaxLen),
			PictureURL:  item.ImageURL,
			CurrencyID:  model.CurrencyPEN,
			Quantity:    item.Quantity,
			UnitPrice:   price.InexactFloat64(),
		})
		itemTotal = itemTotal.Add(price.Mul(decimal.NewFromInt32(item.Quantity)))
	}

	shippingCost = currency.Round2(shippingCost)
	if shippingCost.IsPositive() {
		// Shipping rides as its own line so the provider-side breakdown stays
		// auditable instead of being folded into product prices.
		items = append(items, model.PreferenceItem{
			ID:         "shipping",
			Title:      "Envío",
			CurrencyID: model.CurrencyPEN,
			Quantity:   1,
			UnitPrice:  shippingCost.InexactFloat64(),
		})
	}

	total := itemTotal.Add(shippingCost)
	if total.LessThan(mpMinOrderTotal) {
		return nil, "", apperr.Validation(fmt.Sprintf(
			"order total %s PEN is below the %s PEN minimum",
			total.StringFixed(2), mpMinOrderTotal.StringFixed(2)))
	}

	payer := model.PreferencePayer{
		Name:  payload.Customer.Name,
		Email: payload.Customer.Email,
	}
	if payload.Customer.Phone != "" {
		payer.Phone = &model.PreferencePhone{Number: payload.Customer.Phone}
	}
	if payload.Customer.DNI != "" {
		payer.Identification = &model.Identification{Type: "DNI", Number: payload.Customer.DNI}
	}
	if addr := payload.Address; addr != nil {
		payer.Address = &model.PreferenceAddress{
			StreetName:   addr.Street,
			StreetNumber: addr.Number,
			ZipCode:      addr.ZipCode,
		}
	}

	now := b.now()
	callbackURL := b.baseURL + "/api/checkout/mercadopago/callback"

	req := &model.PreferenceRequest{
		Items: items,
		Payer: payer,
		BackURLs: model.PreferenceBackURLs{
			Success: callbackURL,
			Failure: callbackURL,
			Pending: callbackURL,
		},
		AutoReturn:          "approved",
		ExternalReference:   ref,
		StatementDescriptor: "JOYERIA",
		Expires:             true,
		ExpirationDateFrom:  now.Format(time.RFC3339),
		ExpirationDateTo:    now.Add(mpPreferenceTTL).Format(time.RFC3339),
		Metadata:            buildMetadata(now, payload, itemTotal, shippingCost),
	}

	return req, ref, nil
}

// buildMetadata carries the audit trail both providers share. The MercadoPago
// preference takes it inline; the PayPal builder logs the same fields since
// its order body has no metadata slot.
func buildMetadata(now time.Time, payload *model.CheckoutPayload, subtotal, shippingCost decimal.Decimal) map[string]interface{} {
	return map[string]interface{}{
		"timestamp":     now.Format(time.RFC3339),
		"subtotal":      subtotal.StringFixed(2),
		"shipping_cost": shippingCost.StringFixed(2),
		"free_shipping": shippingCost.IsZero(),
		"item_count":    len(payload.Items),
		"dni_present":   payload.Customer.DNI != "",
	}
}

// truncate cuts s to at most max bytes without splitting a rune, so accented
// titles stay valid UTF-8 on the wire.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
