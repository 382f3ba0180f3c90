package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"petalcart/internal/dto"
	"petalcart/internal/middleware"
	"petalcart/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	reviewService  service.ReviewService
}

func NewCatalogHandler(catalogService service.CatalogService, reviewService service.ReviewService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		reviewService:  reviewService,
	}
}

func flowerIDFromPath(c echo.Context) (uuid.UUID, error) {
	flowerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid flower id")
	}
	return flowerID, nil
}

func (h *CatalogHandler) CreateShop(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	shop, err := h.catalogService.CreateShop(ctx, middleware.UserID(c), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, shop)
}

func (h *CatalogHandler) ListShops(c echo.Context) error {
	ctx := c.Request().Context()

	shops, err := h.catalogService.ListShops(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, shops)
}

func (h *CatalogHandler) CreateFlower(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateFlowerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	flower, err := h.catalogService.CreateFlower(ctx, middleware.UserID(c), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, flower)
}

func (h *CatalogHandler) ListFlowers(c echo.Context) error {
	ctx := c.Request().Context()

	flowers, err := h.catalogService.ListFlowers(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, flowers)
}

func (h *CatalogHandler) GetFlower(c echo.Context) error {
	ctx := c.Request().Context()

	flowerID, err := flowerIDFromPath(c)
	if err != nil {
		return err
	}

	detail, err := h.catalogService.GetFlower(ctx, flowerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, detail)
}

func (h *CatalogHandler) Restock(c echo.Context) error {
	ctx := c.Request().Context()

	flowerID, err := flowerIDFromPath(c)
	if err != nil {
		return err
	}

	var req dto.RestockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	stock, err := h.catalogService.Restock(ctx, middleware.UserID(c), flowerID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, stock)
}

func (h *CatalogHandler) ListComments(c echo.Context) error {
	ctx := c.Request().Context()

	flowerID, err := flowerIDFromPath(c)
	if err != nil {
		return err
	}

	comments, err := h.reviewService.ListComments(ctx, flowerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, comments)
}

func (h *CatalogHandler) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()

	flowerID, err := flowerIDFromPath(c)
	if err != nil {
		return err
	}

	var req dto.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	comment, err := h.reviewService.CreateComment(ctx, middleware.UserID(c), flowerID, req.Body)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, comment)
}
