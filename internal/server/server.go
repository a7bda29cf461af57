package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"joyeria-checkout/internal/apperr"
	"joyeria-checkout/internal/handler"
	"joyeria-checkout/internal/middleware"
	"joyeria-checkout/internal/service"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	adminHandler    *handler.AdminHandler
	adminToken      string
}

func NewServer(
	checkoutService service.CheckoutService,
	orderService service.OrderService,
	shippingService service.ShippingSettingsService,
	adminToken string,
	log *logrus.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = newHTTPErrorHandler(log)

	s := &Server{
		echo:            e,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService, orderService),
		adminHandler:    handler.NewAdminHandler(orderService, shippingService),
		adminToken:      adminToken,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- checkout --------
	checkout := api.Group("/checkout")
	checkout.POST("/mercadopago", s.checkoutHandler.CheckoutMercadoPago)
	checkout.GET("/mercadopago/callback", s.checkoutHandler.MercadoPagoCallback)
	checkout.POST("/mercadopago/confirm", s.checkoutHandler.ConfirmMercadoPago)
	checkout.POST("/paypal", s.checkoutHandler.CheckoutPaypal)
	checkout.GET("/paypal/return", s.checkoutHandler.PaypalReturn)
	checkout.POST("/paypal/capture/:orderID", s.checkoutHandler.CapturePaypal)

	api.GET("/orders/:orderNumber", s.checkoutHandler.GetOrder)

	// -------- back office --------
	admin := api.Group("/admin", middleware.AdminAuth(s.adminToken))
	admin.GET("/shipping-settings", s.adminHandler.GetShippingSettings)
	admin.PUT("/shipping-settings", s.adminHandler.UpdateShippingSettings)
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.PATCH("/orders/:id/status", s.adminHandler.UpdateOrderStatus)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid request: "+err.Error(), err)
	}
	return nil
}

// newHTTPErrorHandler maps the error taxonomy onto status codes and user-safe
// bodies. Wrapped causes (raw provider bodies included) go to the log only.
func newHTTPErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			_ = c.JSON(httpErr.Code, map[string]string{"error": fmt.Sprint(httpErr.Message)})
			return
		}

		status := http.StatusInternalServerError
		switch apperr.KindOf(err) {
		case apperr.KindValidation:
			status = http.StatusBadRequest
		case apperr.KindConfiguration:
			status = http.StatusServiceUnavailable
		case apperr.KindNetwork, apperr.KindProvider:
			status = http.StatusBadGateway
		case apperr.KindPersistence:
			status = http.StatusInternalServerError
		}

		if status >= 500 {
			log.WithError(err).WithField("path", c.Path()).Error("request failed")
		} else {
			log.WithError(err).WithField("path", c.Path()).Warn("request rejected")
		}

		_ = c.JSON(status, map[string]string{"error": apperr.UserMessage(err)})
	}
}
