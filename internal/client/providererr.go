package client

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"joyeria-checkout/internal/apperr"
)

// mapProviderStatus turns a non-2xx backend-function response into a
// user-actionable message. The raw body is logged for audit but never shown
// verbatim to the end user.
func mapProviderStatus(log *logrus.Logger, provider string, status int, body []byte) *apperr.Error {
	log.WithFields(logrus.Fields{
		"provider": provider,
		"status":   status,
		"body":     string(body),
	}).Error("provider backend returned an error")

	var msg string
	switch {
	case status == http.StatusBadRequest:
		msg = "the payment data was rejected, please review your details"
	case status == http.StatusUnauthorized:
		msg = "the payment service credentials have expired"
	case status == http.StatusForbidden:
		msg = "access to the payment service was denied"
	case status == http.StatusNotFound:
		msg = "the payment service endpoint is not available"
	case status >= 500:
		msg = "the payment service is temporarily unavailable"
	default:
		msg = fmt.Sprintf("the payment service rejected the request (%d)", status)
	}

	return apperr.Wrap(apperr.KindProvider, msg,
		fmt.Errorf("%s backend status %d: %s", provider, status, string(body)))
}

// netError wraps a transport-level failure. Distinguished from a provider
// response so the caller knows the whole checkout step is safe to retry.
func netError(provider string, err error) *apperr.Error {
	return apperr.Wrap(apperr.KindNetwork,
		"could not reach the payment service, please check your connection",
		fmt.Errorf("%s backend request: %w", provider, err))
}
