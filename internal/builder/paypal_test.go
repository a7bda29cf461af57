package builder

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joyeria-checkout/internal/apperr"
)

func TestBuildOrderConvertsToUSD(t *testing.T) {
	b := NewPaypalBuilder("https://shop.example.com", testLogger())

	req, ref, err := b.Build(testPayload("100"), decimal.Zero)
	require.NoError(t, err)

	require.Len(t, req.PurchaseUnits, 1)
	unit := req.PurchaseUnits[0]

	// 100 PEN × 0.267 = 26.70 USD
	require.Len(t, unit.Items, 1)
	assert.Equal(t, "26.70", unit.Items[0].UnitAmount.Value)
	assert.Equal(t, "USD", unit.Items[0].UnitAmount.CurrencyCode)
	assert.Equal(t, "1", unit.Items[0].Quantity)

	assert.Equal(t, ref, unit.ReferenceID)
	assert.Equal(t, "CAPTURE", req.Intent)
}

func TestBuildOrderBreakdownIsConsistent(t *testing.T) {
	b := NewPaypalBuilder("https://shop.example.com", testLogger())

	req, _, err := b.Build(testPayload("30", "45.50"), decimal.RequireFromString("9.99"))
	require.NoError(t, err)

	amount := req.PurchaseUnits[0].Amount
	breakdown := amount.Breakdown
	require.NotNil(t, breakdown)

	itemTotal := decimal.RequireFromString(breakdown.ItemTotal.Value)
	shipping := decimal.RequireFromString(breakdown.Shipping.Value)
	tax := decimal.RequireFromString(breakdown.TaxTotal.Value)
	total := decimal.RequireFromString(amount.Value)

	// The USD breakdown only has to be internally consistent, not mirror the
	// PEN one.
	assert.True(t, itemTotal.Add(shipping).Add(tax).Equal(total),
		"item %s + shipping %s + tax %s != total %s", itemTotal, shipping, tax, total)

	// item totals come from the rounded per-line prices
	want := decimal.RequireFromString("8.01").Add(decimal.RequireFromString("12.15"))
	assert.True(t, itemTotal.Equal(want), "got %s", itemTotal)
}

func TestBuildOrderRejectsUnderMinimumTotal(t *testing.T) {
	b := NewPaypalBuilder("https://shop.example.com", testLogger())

	// 1 PEN ≈ 0.27 USD, below the 1.00 USD order minimum.
	_, _, err := b.Build(testPayload("1"), decimal.Zero)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestBuildOrderLogsAuditFields(t *testing.T) {
	log, hook := logrustest.NewNullLogger()
	b := NewPaypalBuilder("https://shop.example.com", log)
	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	_, ref, err := b.Build(testPayload("30", "45.50"), decimal.RequireFromString("9.99"))
	require.NoError(t, err)

	var entry *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "paypal order audit" {
			entry = e
		}
	}
	require.NotNil(t, entry, "no audit entry logged")

	// Same fields the MercadoPago preference carries inline, in USD.
	assert.Equal(t, ref, entry.Data["external_reference"])
	assert.Equal(t, fixed.Format(time.RFC3339), entry.Data["timestamp"])
	assert.Equal(t, "20.16", entry.Data["subtotal"])
	assert.Equal(t, "2.67", entry.Data["shipping_cost"])
	assert.Equal(t, false, entry.Data["free_shipping"])
	assert.Equal(t, 2, entry.Data["item_count"])
	assert.Equal(t, false, entry.Data["dni_present"])
}

func TestBuildOrderTruncatesName(t *testing.T) {
	b := NewPaypalBuilder("https://shop.example.com", testLogger())

	payload := testPayload("100")
	payload.Items[0].Title = strings.Repeat("y", 200)

	req, _, err := b.Build(payload, decimal.Zero)
	require.NoError(t, err)
	assert.Len(t, req.PurchaseUnits[0].Items[0].Name, paypalItemNameMaxLen)
}
