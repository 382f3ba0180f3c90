package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"petalcart/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Callback receives the gateway's payment notification. The transport is
// unauthenticated; the payload signature is the authenticity check.
func (h *PaymentHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return writeError(c, service.ErrMalformedPayload)
	}

	if err := h.paymentService.HandleCallback(ctx, body); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, okResponse())
}
