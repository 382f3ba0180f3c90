package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"petalcart/internal/service"
)

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func okResponse() statusResponse {
	return statusResponse{Status: "ok"}
}

// writeError maps the service error taxonomy onto HTTP responses of the
// shape {status:"error", message}.
func writeError(c echo.Context, err error) error {
	var insufficient *service.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.JSON(http.StatusConflict, statusResponse{
			Status:  "error",
			Message: fmt.Sprintf("insufficient stock: only %d available", insufficient.Available),
		})
	}

	var code int
	switch {
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrMalformedPayload),
		errors.Is(err, service.ErrSignatureInvalid):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNoStockRecord), errors.Is(err, service.ErrShopExists):
		code = http.StatusConflict
	case errors.Is(err, service.ErrGatewayUnconfigured):
		code = http.StatusServiceUnavailable
	case errors.Is(err, service.ErrGatewayUnavailable):
		code = http.StatusBadGateway
	default:
		return c.JSON(http.StatusInternalServerError, statusResponse{
			Status:  "error",
			Message: "internal error",
		})
	}

	return c.JSON(code, statusResponse{
		Status:  "error",
		Message: err.Error(),
	})
}
