package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"petalcart/internal/dto"
	"petalcart/internal/middleware"
	"petalcart/internal/service"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func itemIDFromPath(c echo.Context) (uint, error) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid cart item id")
	}
	return uint(itemID), nil
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.cartService.Get(ctx, middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.cartService.Add(ctx, middleware.UserID(c), req.FlowerID, req.Quantity); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, okResponse())
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := itemIDFromPath(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.cartService.SetQuantity(ctx, middleware.UserID(c), itemID, req.Quantity); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, okResponse())
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := itemIDFromPath(c)
	if err != nil {
		return err
	}

	if err := h.cartService.Remove(ctx, middleware.UserID(c), itemID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, okResponse())
}
