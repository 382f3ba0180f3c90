package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petalcart/internal/dto"
	"petalcart/internal/model"
)

// checkoutScenario seeds a cart with 2x Rose (10.00) and 1x Lily (5.00) and
// runs checkout, returning the gateway order id and the two flowers.
func checkoutScenario(t *testing.T, env *testEnv) (string, *model.Flower, *model.Flower, *dto.CheckoutResponse) {
	t.Helper()
	ctx := context.Background()

	rose := env.seedFlower(t, "Rose", "10.00", 10)
	lily := env.seedFlower(t, "Lily", "5.00", 10)
	require.NoError(t, env.cart.Add(ctx, "user-1", rose.FlowerID, 2))
	require.NoError(t, env.cart.Add(ctx, "user-1", lily.FlowerID, 1))

	resp, err := env.checkout(&fakeGateway{orderID: "order_rzp_100"}).Checkout(ctx, "user-1")
	require.NoError(t, err)

	return "order_rzp_100", rose, lily, resp
}

func TestHandleCallback_FinalizesOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rzpOrderID, rose, lily, resp := checkoutScenario(t, env)

	sig := signPayload(testKeySecret, rzpOrderID, "pay_123")
	require.NoError(t, env.payment().HandleCallback(ctx, callbackBody(rzpOrderID, "pay_123", sig)))

	order, err := env.orders.FindByID(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, order.Status)
	require.NotNil(t, order.RazorpayPaymentID)
	assert.Equal(t, "pay_123", *order.RazorpayPaymentID)

	assert.Equal(t, int64(8), env.stockQty(t, rose.FlowerID))
	assert.Equal(t, int64(9), env.stockQty(t, lily.FlowerID))

	view, err := env.cart.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestHandleCallback_DuplicateDeliveryIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rzpOrderID, rose, lily, _ := checkoutScenario(t, env)

	sig := signPayload(testKeySecret, rzpOrderID, "pay_123")
	body := callbackBody(rzpOrderID, "pay_123", sig)
	svc := env.payment()

	require.NoError(t, svc.HandleCallback(ctx, body))
	require.NoError(t, svc.HandleCallback(ctx, body))

	// stock decremented exactly once
	assert.Equal(t, int64(8), env.stockQty(t, rose.FlowerID))
	assert.Equal(t, int64(9), env.stockQty(t, lily.FlowerID))
}

func TestHandleCallback_TamperedSignatureRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rzpOrderID, rose, _, resp := checkoutScenario(t, env)

	sig := []byte(signPayload(testKeySecret, rzpOrderID, "pay_123"))
	// flip a single character
	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}

	err := env.payment().HandleCallback(ctx, callbackBody(rzpOrderID, "pay_123", string(sig)))
	assert.ErrorIs(t, err, ErrSignatureInvalid)

	// zero state mutation
	order, err := env.orders.FindByID(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, int64(10), env.stockQty(t, rose.FlowerID))
	view, err := env.cart.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
}

func TestHandleCallback_MalformedPayloads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.payment()

	cases := [][]byte{
		[]byte(`not json`),
		[]byte(`{}`),
		callbackBody("", "pay_123", "sig"),
		callbackBody("order_rzp_100", "", "sig"),
		callbackBody("order_rzp_100", "pay_123", ""),
	}
	for _, body := range cases {
		assert.ErrorIs(t, svc.HandleCallback(ctx, body), ErrMalformedPayload, "body %s", body)
	}
}

func TestHandleCallback_UnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sig := signPayload(testKeySecret, "order_rzp_missing", "pay_123")
	err := env.payment().HandleCallback(ctx, callbackBody("order_rzp_missing", "pay_123", sig))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHandleCallback_InsufficientStockAbortsWholeTransaction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rzpOrderID, rose, lily, resp := checkoutScenario(t, env)

	// stock drains between checkout and callback: lily sells out elsewhere
	_, err := env.stocks.Decrement(ctx, env.db, lily.FlowerID, 10)
	require.NoError(t, err)

	sig := signPayload(testKeySecret, rzpOrderID, "pay_123")
	err = env.payment().HandleCallback(ctx, callbackBody(rzpOrderID, "pay_123", sig))

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(0), insufficient.Available)

	// nothing moved: rose stock intact, order still pending for reconciliation
	assert.Equal(t, int64(10), env.stockQty(t, rose.FlowerID))
	order, err := env.orders.FindByID(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Nil(t, order.RazorpayPaymentID)
}
