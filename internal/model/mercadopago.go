package model

// Wire shapes for the MercadoPago create-preference / get-payment backend
// functions. Amounts are JSON numbers, PEN, already rounded to 2 decimals.

type PreferenceItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	PictureURL  string  `json:"picture_url,omitempty"`
	CurrencyID  string  `json:"currency_id"`
	Quantity    int32   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type Identification struct {
	Type   string `json:"type"` // always "DNI"
	Number string `json:"number"`
}

type PreferencePhone struct {
	Number string `json:"number,omitempty"`
}

type PreferenceAddress struct {
	StreetName   string `json:"street_name,omitempty"`
	StreetNumber string `json:"street_number,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
}

type PreferencePayer struct {
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          *PreferencePhone   `json:"phone,omitempty"`
	Identification *Identification    `json:"identification,omitempty"`
	Address        *PreferenceAddress `json:"address,omitempty"`
}

type PreferenceBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type PreferenceRequest struct {
	Items               []PreferenceItem       `json:"items"`
	Payer               PreferencePayer        `json:"payer"`
	BackURLs            PreferenceBackURLs     `json:"back_urls"`
	AutoReturn          string                 `json:"auto_return"`
	ExternalReference   string                 `json:"external_reference"`
	StatementDescriptor string                 `json:"statement_descriptor"`
	Expires             bool                   `json:"expires"`
	ExpirationDateFrom  string                 `json:"expiration_date_from"`
	ExpirationDateTo    string                 `json:"expiration_date_to"`
	Metadata            map[string]interface{} `json:"metadata"`
}

type PreferenceResult struct {
	ID                string `json:"id"`
	InitPoint         string `json:"init_point"`
	SandboxInitPoint  string `json:"sandbox_init_point"`
	ExternalReference string `json:"external_reference"`
}

// MercadoPagoPayment is the get-payment response. The id is numeric on the
// wire.
type MercadoPagoPayment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"` // approved, pending, in_process, rejected
	StatusDetail      string  `json:"status_detail"`
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
	CurrencyID        string  `json:"currency_id"`
	PaymentMethodID   string  `json:"payment_method_id"`
	DateApproved      string  `json:"date_approved"`
}
