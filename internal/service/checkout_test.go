package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petalcart/internal/config"
	"petalcart/internal/model"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		paise  int64
	}{
		{"25.00", 2500},
		{"0.01", 1},
		{"19.99", 1999},
		{"0.00", 0},
		{"100", 10000},
		// round-half-up at the paise boundary
		{"0.005", 1},
		{"10.015", 1002},
	}

	for _, tc := range cases {
		got := toMinorUnits(decimal.RequireFromString(tc.amount))
		assert.Equal(t, tc.paise, got, "amount %s", tc.amount)
	}
}

func TestBuyNow_CreatesOrderAndCommitsStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	flower := env.seedFlower(t, "Rose", "10.00", 5)

	gw := &fakeGateway{orderID: "order_rzp_1"}
	order, err := env.checkout(gw).BuyNow(ctx, "user-1", flower.FlowerID, 2)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "20.00", order.Total.StringFixed(2))
	assert.Nil(t, order.RazorpayOrderID)
	assert.Equal(t, int64(3), env.stockQty(t, flower.FlowerID))
	assert.Zero(t, gw.calls, "buy-now must not touch the gateway")

	items, err := env.orders.GetItemsTx(ctx, env.db, order.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, "10.00", items[0].UnitPrice.StringFixed(2))
}

func TestBuyNow_InsufficientStockCreatesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	flower := env.seedFlower(t, "Rose", "10.00", 2)

	_, err := env.checkout(&fakeGateway{}).BuyNow(ctx, "user-1", flower.FlowerID, 3)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(2), insufficient.Available)
	assert.Zero(t, env.orderCount(t))
	assert.Equal(t, int64(2), env.stockQty(t, flower.FlowerID))
}

func TestBuyNow_LastUnitGoesToExactlyOneBuyer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	flower := env.seedFlower(t, "Rose", "10.00", 1)
	svc := env.checkout(&fakeGateway{})

	_, firstErr := svc.BuyNow(ctx, "user-1", flower.FlowerID, 1)
	_, secondErr := svc.BuyNow(ctx, "user-2", flower.FlowerID, 1)

	require.NoError(t, firstErr)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, secondErr, &insufficient)
	assert.Equal(t, int64(0), insufficient.Available)
	assert.Equal(t, int64(1), env.orderCount(t))
	assert.Equal(t, int64(0), env.stockQty(t, flower.FlowerID))
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.checkout(&fakeGateway{}).Checkout(ctx, "user-1")
	assert.ErrorIs(t, err, ErrEmptyCart)

	// a cart that exists but holds nothing is just as empty
	_, err = env.carts.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	_, err = env.checkout(&fakeGateway{}).Checkout(ctx, "user-1")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_GatewayUnconfigured(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	flower := env.seedFlower(t, "Rose", "10.00", 5)
	require.NoError(t, env.cart.Add(ctx, "user-1", flower.FlowerID, 1))

	svc := NewCheckoutService(env.db, &fakeGateway{}, config.Razorpay{},
		env.flowers, env.carts, env.orders, env.inventory, zap.NewNop())

	_, err := svc.Checkout(ctx, "user-1")
	assert.ErrorIs(t, err, ErrGatewayUnconfigured)
	assert.Zero(t, env.orderCount(t))
}

func TestCheckout_GatewayUnavailableLeavesNoOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	flower := env.seedFlower(t, "Rose", "10.00", 5)
	require.NoError(t, env.cart.Add(ctx, "user-1", flower.FlowerID, 1))

	_, err := env.checkout(&fakeGateway{createErr: errGatewayDown}).Checkout(ctx, "user-1")

	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Zero(t, env.orderCount(t))
}

func TestCheckout_CreatesPendingOrderWithoutTouchingStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rose := env.seedFlower(t, "Rose", "10.00", 10)
	lily := env.seedFlower(t, "Lily", "5.00", 10)

	require.NoError(t, env.cart.Add(ctx, "user-1", rose.FlowerID, 2))
	require.NoError(t, env.cart.Add(ctx, "user-1", lily.FlowerID, 1))

	gw := &fakeGateway{orderID: "order_rzp_42"}
	resp, err := env.checkout(gw).Checkout(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "25.00", resp.Total.StringFixed(2))
	assert.Equal(t, int64(2500), resp.AmountPaise)
	assert.Equal(t, int64(2500), gw.lastAmount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "order_rzp_42", resp.RazorpayOrderID)

	order, err := env.orders.FindByRazorpayOrderID(ctx, "order_rzp_42")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	// stock moves only on payment confirmation; the cart stays intact too
	assert.Equal(t, int64(10), env.stockQty(t, rose.FlowerID))
	assert.Equal(t, int64(10), env.stockQty(t, lily.FlowerID))
	view, err := env.cart.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
}

func TestOrderItems_SnapshotSurvivesPriceEdit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	flower := env.seedFlower(t, "Rose", "10.00", 10)
	require.NoError(t, env.cart.Add(ctx, "user-1", flower.FlowerID, 2))

	resp, err := env.checkout(&fakeGateway{orderID: "order_rzp_9"}).Checkout(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, env.db.Model(flower).Update("price", "99.99").Error)

	items, err := env.orders.GetItemsTx(ctx, env.db, resp.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "10.00", items[0].UnitPrice.StringFixed(2))

	order, err := env.orders.FindByID(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "20.00", order.Total.StringFixed(2))
}
