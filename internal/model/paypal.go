package model

// Wire shapes for the PayPal create-order / capture-order backend functions.
// PayPal denominates every amount as a string, USD, 2 decimals.

type PaypalMoney struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type PaypalAmountBreakdown struct {
	ItemTotal *PaypalMoney `json:"item_total,omitempty"`
	Shipping  *PaypalMoney `json:"shipping,omitempty"`
	TaxTotal  *PaypalMoney `json:"tax_total,omitempty"`
}

type PaypalAmount struct {
	CurrencyCode string                 `json:"currency_code"`
	Value        string                 `json:"value"`
	Breakdown    *PaypalAmountBreakdown `json:"breakdown,omitempty"`
}

type PaypalItem struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	SKU         string      `json:"sku,omitempty"`
	UnitAmount  PaypalMoney `json:"unit_amount"`
	Quantity    string      `json:"quantity"`
}

type PaypalPurchaseUnit struct {
	ReferenceID string       `json:"reference_id"`
	CustomID    string       `json:"custom_id,omitempty"`
	Description string       `json:"description,omitempty"`
	Amount      PaypalAmount `json:"amount"`
	Items       []PaypalItem `json:"items,omitempty"`
}

type PaypalApplicationContext struct {
	BrandName  string `json:"brand_name,omitempty"`
	ReturnURL  string `json:"return_url,omitempty"`
	CancelURL  string `json:"cancel_url,omitempty"`
	UserAction string `json:"user_action,omitempty"`
}

type PaypalOrderRequest struct {
	Intent             string                    `json:"intent"`
	PurchaseUnits      []PaypalPurchaseUnit      `json:"purchase_units"`
	ApplicationContext *PaypalApplicationContext `json:"application_context,omitempty"`
}

type PaypalLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type PaypalOrderResult struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Links  []PaypalLink `json:"links"`
}

type PaypalCapture struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Final  bool        `json:"final_capture"`
	Amount PaypalMoney `json:"amount"`
}

type PaypalPayments struct {
	Captures []PaypalCapture `json:"captures"`
}

type PaypalCapturedUnit struct {
	ReferenceID string         `json:"reference_id"`
	Payments    PaypalPayments `json:"payments"`
}

type PaypalCaptureResult struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	PurchaseUnits []PaypalCapturedUnit `json:"purchase_units"`
}
