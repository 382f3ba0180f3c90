package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"petalcart/internal/client"
	"petalcart/internal/config"
	"petalcart/internal/model"
	"petalcart/internal/repository"
)

const testKeySecret = "test-key-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// unique shared-cache name so the pool's connections see one database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.FlowerShop{},
		&model.Flower{},
		&model.Stock{},
		&model.Comment{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	))

	return db
}

type testEnv struct {
	db        *gorm.DB
	shopRepo  repository.ShopRepository
	flowers   repository.FlowerRepository
	stocks    repository.StockRepository
	carts     repository.CartRepository
	orders    repository.OrderRepository
	inventory InventoryService
	cart      CartService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	flowers := repository.NewFlowerRepository(db)
	stocks := repository.NewStockRepository(db)
	carts := repository.NewCartRepository(db)

	return &testEnv{
		db:        db,
		shopRepo:  repository.NewShopRepository(db),
		flowers:   flowers,
		stocks:    stocks,
		carts:     carts,
		orders:    repository.NewOrderRepository(db),
		inventory: NewInventoryService(stocks),
		cart:      NewCartService(carts, flowers, stocks),
	}
}

func (e *testEnv) checkout(gateway client.RazorpayClient) CheckoutService {
	cfg := config.Razorpay{KeyID: "test-key-id", KeySecret: testKeySecret}
	return NewCheckoutService(e.db, gateway, cfg, e.flowers, e.carts, e.orders, e.inventory, zap.NewNop())
}

func (e *testEnv) payment() PaymentService {
	verifier := client.NewRazorpayClient(&config.Razorpay{KeySecret: testKeySecret})
	return NewPaymentService(e.db, verifier, false, e.orders, e.carts, e.inventory, zap.NewNop())
}

func (e *testEnv) seedFlower(t *testing.T, name, price string, stockQty int64) *model.Flower {
	t.Helper()

	shopID := uuid.New()
	flower := &model.Flower{
		FlowerID:   uuid.New(),
		ShopID:     shopID,
		FlowerName: name,
		Price:      decimal.RequireFromString(price),
	}
	require.NoError(t, e.flowers.Create(context.Background(), flower))

	if stockQty >= 0 {
		require.NoError(t, e.stocks.Upsert(context.Background(), &model.Stock{
			FlowerID: flower.FlowerID,
			ShopID:   shopID,
			Quantity: stockQty,
		}))
	}

	return flower
}

func (e *testEnv) stockQty(t *testing.T, flowerID uuid.UUID) int64 {
	t.Helper()

	stock, err := e.stocks.Get(context.Background(), flowerID)
	require.NoError(t, err)
	return stock.Quantity
}

func (e *testEnv) orderCount(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(&model.Order{}).Count(&count).Error)
	return count
}

// fakeGateway implements client.RazorpayClient for checkout tests.
type fakeGateway struct {
	orderID     string
	createErr   error
	lastAmount  int64
	lastReceipt string
	calls       int
}

func (f *fakeGateway) CreateOrder(_ context.Context, amountPaise int64, receipt string) (string, error) {
	f.calls++
	f.lastAmount = amountPaise
	f.lastReceipt = receipt
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.orderID, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signPayload(testKeySecret, orderID, paymentID) == signature
}

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func callbackBody(orderID, paymentID, signature string) []byte {
	return []byte(fmt.Sprintf(
		`{"razorpay_order_id":%q,"razorpay_payment_id":%q,"razorpay_signature":%q}`,
		orderID, paymentID, signature))
}

var errGatewayDown = errors.New("gateway down")
