package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"petalcart/internal/dto"
	"petalcart/internal/middleware"
	"petalcart/internal/service"
)

type OrderHandler struct {
	checkoutService service.CheckoutService
}

func NewOrderHandler(checkoutService service.CheckoutService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
	}
}

func (h *OrderHandler) BuyNow(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BuyNowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.checkoutService.BuyNow(ctx, middleware.UserID(c), req.FlowerID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.checkoutService.Checkout(ctx, middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *OrderHandler) History(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.checkoutService.History(ctx, middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}
