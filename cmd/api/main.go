package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"petalcart/internal/client"
	"petalcart/internal/config"
	"petalcart/internal/repository"
	"petalcart/internal/server"
	"petalcart/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := client.InitSqliteClient(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}

	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)

	shopRepo := repository.NewShopRepository(db)
	flowerRepo := repository.NewFlowerRepository(db)
	stockRepo := repository.NewStockRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	inventoryService := service.NewInventoryService(stockRepo)
	catalogService := service.NewCatalogService(shopRepo, flowerRepo, stockRepo, commentRepo)
	reviewService := service.NewReviewService(flowerRepo, commentRepo)
	cartService := service.NewCartService(cartRepo, flowerRepo, stockRepo)
	checkoutService := service.NewCheckoutService(
		db, razorpayClient, cfg.Razorpay,
		flowerRepo, cartRepo, orderRepo,
		inventoryService, logger,
	)
	paymentService := service.NewPaymentService(
		db, razorpayClient, cfg.Razorpay.SkipVerify,
		orderRepo, cartRepo,
		inventoryService, logger,
	)

	if !cfg.Razorpay.Configured() {
		logger.Warn("razorpay credentials missing; cart checkout will be rejected until RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are set")
	}

	srv := server.NewServer(catalogService, reviewService, cartService, checkoutService, paymentService)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{"stdout"}
	zapCfg.ErrorOutputPaths = []string{"stdout"}

	if level, err := zap.ParseAtomicLevel(cfg.Log.Level); err == nil {
		zapCfg.Level = level
	}
	if cfg.Log.Format == "console" {
		zapCfg.Encoding = "console"
	}
	zapCfg.InitialFields = map[string]any{
		"service": "petalcart",
		"env":     cfg.Environment.Name,
	}

	return zapCfg.Build()
}
