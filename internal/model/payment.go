package model

// PaymentDetails is the tagged union of the two providers' capture payloads.
// Each variant maps itself explicitly into the common Order columns instead of
// merging both shapes into one loosely-typed bag.
type PaymentDetails interface {
	PaymentID() string
	Method() string
	Currency() string
	PaymentStatus() string
	Reference() string
	Raw() string
}

// MercadoPagoDetails describes an approved MercadoPago payment, as returned by
// the get-payment backend function.
type MercadoPagoDetails struct {
	ID                string
	Status            string
	ExternalReference string
	RawPayload        string
}

func (d MercadoPagoDetails) PaymentID() string     { return d.ID }
func (d MercadoPagoDetails) Method() string        { return PaymentMethodMercadoPago }
func (d MercadoPagoDetails) Currency() string      { return CurrencyPEN }
func (d MercadoPagoDetails) PaymentStatus() string { return d.Status }
func (d MercadoPagoDetails) Reference() string     { return d.ExternalReference }
func (d MercadoPagoDetails) Raw() string           { return d.RawPayload }

// PayPalDetails describes a captured PayPal order. CaptureID is the payment
// identifier; the provider order id only survives inside the raw payload.
type PayPalDetails struct {
	CaptureID         string
	OrderID           string
	Status            string
	ExternalReference string
	RawPayload        string
}

func (d PayPalDetails) PaymentID() string     { return d.CaptureID }
func (d PayPalDetails) Method() string        { return PaymentMethodPaypal }
func (d PayPalDetails) Currency() string      { return CurrencyUSD }
func (d PayPalDetails) PaymentStatus() string { return d.Status }
func (d PayPalDetails) Reference() string     { return d.ExternalReference }
func (d PayPalDetails) Raw() string           { return d.RawPayload }
