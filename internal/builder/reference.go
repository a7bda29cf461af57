package builder

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// referencePrefix tags every external reference generated by this service.
const referencePrefix = "JOYA"

// NewExternalReference returns a fresh correlation key for one checkout
// attempt, e.g. JOYA_1714426378123_9f2c1b7a. Provider callbacks carry it back
// so an attempt can be matched independently of the eventual payment id. It is
// also the reuse key when a creation call has to be retried: retrying with a
// new reference would create a duplicate provider-side preference.
func NewExternalReference() string {
	return fmt.Sprintf("%s_%d_%s", referencePrefix, time.Now().UnixMilli(), randomToken())
}

// NewOrderNumber returns the human-readable order identifier,
// e.g. MERCADOPAGO-1714426378-9f2c1b7a. Uniqueness is ultimately enforced by
// the store's constraint, not by this format alone.
func NewOrderNumber(method string) string {
	return fmt.Sprintf("%s-%d-%s", strings.ToUpper(method), time.Now().Unix(), randomToken())
}

func randomToken() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
