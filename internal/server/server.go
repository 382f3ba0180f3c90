package server

import (
	"petalcart/internal/handler"
	"petalcart/internal/middleware"
	"petalcart/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
}

func NewServer(
	catalogService service.CatalogService,
	reviewService service.ReviewService,
	cartService service.CartService,
	checkoutService service.CheckoutService,
	paymentService service.PaymentService,
) *Server {
	e := echo.New()

	e.Use(echomw.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		catalogHandler: handler.NewCatalogHandler(catalogService, reviewService),
		cartHandler:    handler.NewCartHandler(cartService),
		orderHandler:   handler.NewOrderHandler(checkoutService),
		paymentHandler: handler.NewPaymentHandler(paymentService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- public catalog --------
	api.GET("/shops", s.catalogHandler.ListShops)
	api.GET("/flowers", s.catalogHandler.ListFlowers)
	api.GET("/flowers/:id", s.catalogHandler.GetFlower)
	api.GET("/flowers/:id/comments", s.catalogHandler.ListComments)

	// -------- payment gateway callback (authenticated by signature) --------
	api.POST("/payment/callback", s.paymentHandler.Callback)

	// -------- authenticated --------
	auth := api.Group("", middleware.AuthMiddleware())
	auth.POST("/shops", s.catalogHandler.CreateShop)
	auth.POST("/flowers", s.catalogHandler.CreateFlower)
	auth.PUT("/flowers/:id/stock", s.catalogHandler.Restock)
	auth.POST("/flowers/:id/comments", s.catalogHandler.CreateComment)

	auth.GET("/cart", s.cartHandler.GetCart)
	auth.POST("/cart/items", s.cartHandler.AddItem)
	auth.PATCH("/cart/items/:id", s.cartHandler.UpdateItem)
	auth.DELETE("/cart/items/:id", s.cartHandler.RemoveItem)

	auth.POST("/orders/buy-now", s.orderHandler.BuyNow)
	auth.POST("/orders/checkout", s.orderHandler.Checkout)
	auth.GET("/orders", s.orderHandler.History)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
