package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"joyeria-checkout/internal/dto"
	"joyeria-checkout/internal/model"
	"joyeria-checkout/internal/service"
)

type AdminHandler struct {
	orderService    service.OrderService
	shippingService service.ShippingSettingsService
}

func NewAdminHandler(orderService service.OrderService, shippingService service.ShippingSettingsService) *AdminHandler {
	return &AdminHandler{
		orderService:    orderService,
		shippingService: shippingService,
	}
}

func (h *AdminHandler) GetShippingSettings(c echo.Context) error {
	ctx := c.Request().Context()

	setting, err := h.shippingService.Get(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, settingsResponse(setting))
}

func (h *AdminHandler) UpdateShippingSettings(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ShippingSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	setting, err := h.shippingService.Update(ctx,
		decimal.NewFromFloat(req.FreeShippingThreshold),
		decimal.NewFromFloat(req.StandardShippingCost))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, settingsResponse(setting))
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	orders, err := h.orderService.List(ctx, limit)
	if err != nil {
		return err
	}

	resp := make([]*dto.OrderResponse, len(orders))
	for i, order := range orders {
		resp[i] = dto.NewOrderResponse(order)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orderService.UpdateStatus(ctx, uint(orderID), model.OrderStatus(req.Status))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

func settingsResponse(setting *model.ShippingSetting) *dto.ShippingSettingsResponse {
	return &dto.ShippingSettingsResponse{
		FreeShippingThreshold: setting.FreeShippingThreshold.StringFixed(2),
		StandardShippingCost:  setting.StandardShippingCost.StringFixed(2),
	}
}
