package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"petalcart/internal/client"
	"petalcart/internal/config"
	"petalcart/internal/dto"
	"petalcart/internal/model"
	"petalcart/internal/repository"
)

type CheckoutService interface {
	// BuyNow creates a paid-on-delivery style order for a single flower and
	// commits the stock immediately. It does not involve the gateway.
	BuyNow(ctx context.Context, userID string, flowerID uuid.UUID, qty int64) (*model.Order, error)
	// Checkout converts the user's cart into a pending order backed by a
	// gateway order. Stock is not decremented and the cart is not cleared
	// until the payment callback confirms.
	Checkout(ctx context.Context, userID string) (*dto.CheckoutResponse, error)
	History(ctx context.Context, userID string) ([]*model.Order, error)
}

type checkoutServiceImpl struct {
	db          *gorm.DB
	gateway     client.RazorpayClient
	razorpayCfg config.Razorpay
	flowerRepo  repository.FlowerRepository
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	inventory   InventoryService
	logger      *zap.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	gateway client.RazorpayClient,
	razorpayCfg config.Razorpay,
	flowerRepo repository.FlowerRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	inventory InventoryService,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		db:          db,
		gateway:     gateway,
		razorpayCfg: razorpayCfg,
		flowerRepo:  flowerRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		inventory:   inventory,
		logger:      logger,
	}
}

func (s *checkoutServiceImpl) BuyNow(ctx context.Context, userID string, flowerID uuid.UUID, qty int64) (*model.Order, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	flower, err := s.flowerRepo.FindByID(ctx, flowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get flower: %w", err)
	}

	if err := s.inventory.ValidateAvailability(ctx, flowerID, qty); err != nil {
		return nil, err
	}

	order := &model.Order{
		OrderID: uuid.New(),
		UserID:  userID,
		Status:  model.OrderStatusPending,
		Total:   flower.Price.Mul(decimal.NewFromInt(qty)),
	}
	item := &model.OrderItem{
		OrderID:   order.OrderID,
		FlowerID:  flowerID,
		Quantity:  qty,
		UnitPrice: flower.Price,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.CreateTx(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orderRepo.CreateItemsTx(ctx, tx, []*model.OrderItem{item}); err != nil {
			return fmt.Errorf("store order item: %w", err)
		}
		// stock commits at order creation on this path
		return s.inventory.Decrement(ctx, tx, flowerID, qty)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("buy-now order created",
		zap.String("order_id", order.OrderID.String()),
		zap.String("user_id", userID),
		zap.String("total", order.Total.StringFixed(2)))

	return order, nil
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID string) (*dto.CheckoutResponse, error) {
	if !s.razorpayCfg.Configured() {
		return nil, ErrGatewayUnconfigured
	}

	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	items, err := s.cartRepo.ListItems(ctx, cart.CartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	flowerIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		flowerIDs[i] = item.FlowerID
	}
	flowers, err := s.flowerRepo.FindMany(ctx, flowerIDs)
	if err != nil {
		return nil, fmt.Errorf("get flowers for cart: %w", err)
	}
	flowerByID := make(map[uuid.UUID]*model.Flower, len(flowers))
	for _, f := range flowers {
		flowerByID[f.FlowerID] = f
	}

	orderID := uuid.New()
	total := decimal.Zero
	orderItems := make([]*model.OrderItem, 0, len(items))
	for _, item := range items {
		flower, ok := flowerByID[item.FlowerID]
		if !ok {
			return nil, ErrNotFound
		}
		if err := s.inventory.ValidateAvailability(ctx, item.FlowerID, item.Quantity); err != nil {
			return nil, err
		}
		total = total.Add(flower.Price.Mul(decimal.NewFromInt(item.Quantity)))
		orderItems = append(orderItems, &model.OrderItem{
			OrderID:   orderID,
			FlowerID:  item.FlowerID,
			Quantity:  item.Quantity,
			UnitPrice: flower.Price, // snapshot, later price edits do not touch it
		})
	}

	amountPaise := toMinorUnits(total)

	razorpayOrderID, err := s.gateway.CreateOrder(ctx, amountPaise, orderID.String())
	if err != nil {
		s.logger.Error("gateway create order failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	order := &model.Order{
		OrderID:         orderID,
		UserID:          userID,
		Status:          model.OrderStatusPending,
		Total:           total,
		RazorpayOrderID: &razorpayOrderID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.CreateTx(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orderRepo.CreateItemsTx(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("checkout order created",
		zap.String("order_id", orderID.String()),
		zap.String("razorpay_order_id", razorpayOrderID),
		zap.String("user_id", userID),
		zap.Int64("amount_paise", amountPaise))

	return &dto.CheckoutResponse{
		OrderID:         orderID,
		RazorpayOrderID: razorpayOrderID,
		Total:           total,
		AmountPaise:     amountPaise,
		Currency:        "INR",
	}, nil
}

func (s *checkoutServiceImpl) History(ctx context.Context, userID string) ([]*model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

// toMinorUnits converts a rupee amount to paise, rounding halves up.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
