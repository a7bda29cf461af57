package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"joyeria-checkout/internal/dto"
	"joyeria-checkout/internal/model"
	"joyeria-checkout/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	orderService    service.OrderService
}

func NewCheckoutHandler(checkoutService service.CheckoutService, orderService service.OrderService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

func (h *CheckoutHandler) CheckoutMercadoPago(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.checkoutService.CheckoutMercadoPago(ctx, req.ToPayload())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) CheckoutPaypal(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.checkoutService.CheckoutPaypal(ctx, req.ToPayload())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// MercadoPagoCallback handles the return from the hosted checkout page. It
// always answers 200 with whatever status could be determined, so a partial
// redirect never breaks the confirmation screen.
func (h *CheckoutHandler) MercadoPagoCallback(c echo.Context) error {
	ctx := c.Request().Context()

	status := h.checkoutService.MercadoPagoCallback(ctx, c.QueryParams())

	return c.JSON(http.StatusOK, status)
}

func (h *CheckoutHandler) ConfirmMercadoPago(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ConfirmMercadoPagoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.checkoutService.ConfirmMercadoPago(ctx, req.PaymentID, req.ToPayload())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, confirmResponse(order))
}

// PaypalReturn handles the redirect back from PayPal's approval page. PayPal
// appends the provider order id as "token" and, once the buyer approved, a
// PayerID. No state changes here: the confirmation page reads the order id and
// posts the capture separately.
func (h *CheckoutHandler) PaypalReturn(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing token")
	}

	return c.JSON(http.StatusOK, &dto.PaypalReturnResponse{
		ProviderOrderID: token,
		Approved:        c.QueryParam("PayerID") != "",
	})
}

func (h *CheckoutHandler) CapturePaypal(c echo.Context) error {
	ctx := c.Request().Context()

	providerOrderID := c.Param("orderID")
	if providerOrderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing order id")
	}

	var req dto.ConfirmPaypalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.checkoutService.ConfirmPaypal(ctx, providerOrderID, req.ToPayload())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, confirmResponse(order))
}

func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.GetByOrderNumber(ctx, c.Param("orderNumber"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// confirmResponse is the only place ClearCart turns true: the cart stays
// intact on every failure path so a retry never re-adds items.
func confirmResponse(order *model.Order) *dto.ConfirmResponse {
	return &dto.ConfirmResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Total:       order.Total.StringFixed(2),
		Currency:    order.Currency,
		ClearCart:   true,
	}
}
