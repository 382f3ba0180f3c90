package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"petalcart/internal/client"
	"petalcart/internal/dto"
	"petalcart/internal/model"
	"petalcart/internal/repository"
)

// PaymentService finalizes orders from the gateway's asynchronous payment
// notifications. The Pending -> Paid transition is terminal and happens at
// most once per order regardless of how often the callback is delivered.
type PaymentService interface {
	HandleCallback(ctx context.Context, body []byte) error
}

type paymentServiceImpl struct {
	db         *gorm.DB
	gateway    client.RazorpayClient
	skipVerify bool
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	inventory  InventoryService
	logger     *zap.Logger
}

func NewPaymentService(
	db *gorm.DB,
	gateway client.RazorpayClient,
	skipVerify bool,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	inventory InventoryService,
	logger *zap.Logger,
) PaymentService {
	if skipVerify {
		logger.Warn("payment callback signature verification is DISABLED; never run like this in production")
	}
	return &paymentServiceImpl{
		db:         db,
		gateway:    gateway,
		skipVerify: skipVerify,
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		inventory:  inventory,
		logger:     logger,
	}
}

func (s *paymentServiceImpl) HandleCallback(ctx context.Context, body []byte) error {
	var payload dto.PaymentCallback
	if err := json.Unmarshal(body, &payload); err != nil {
		return ErrMalformedPayload
	}
	if payload.RazorpayOrderID == "" || payload.RazorpayPaymentID == "" || payload.RazorpaySignature == "" {
		return ErrMalformedPayload
	}

	if !s.skipVerify {
		if !s.gateway.VerifySignature(payload.RazorpayOrderID, payload.RazorpayPaymentID, payload.RazorpaySignature) {
			s.logger.Warn("payment callback signature mismatch",
				zap.String("razorpay_order_id", payload.RazorpayOrderID),
				zap.String("razorpay_payment_id", payload.RazorpayPaymentID))
			return ErrSignatureInvalid
		}
	}

	order, err := s.orderRepo.FindByRazorpayOrderID(ctx, payload.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find order: %w", err)
	}

	// replayed notification for a settled order is a safe no-op
	if order.Status == model.OrderStatusPaid {
		return nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.orderRepo.MarkPaid(ctx, tx, order.OrderID, payload.RazorpayPaymentID)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if rows == 0 {
			// a concurrent delivery won the status-guarded update
			current, err := s.orderRepo.FindByID(ctx, order.OrderID)
			if err != nil {
				return fmt.Errorf("re-read order: %w", err)
			}
			if current.Status == model.OrderStatusPaid {
				return nil
			}
			return fmt.Errorf("order %s not transitionable", order.OrderID)
		}

		items, err := s.orderRepo.GetItemsTx(ctx, tx, order.OrderID)
		if err != nil {
			return fmt.Errorf("get order items: %w", err)
		}

		// any shortfall aborts the whole transaction: the order stays
		// Pending and no stock moves
		for _, item := range items {
			if err := s.inventory.Decrement(ctx, tx, item.FlowerID, item.Quantity); err != nil {
				return err
			}
		}

		cart, err := s.cartRepo.FindByUser(ctx, order.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("find cart: %w", err)
		}
		if err := s.cartRepo.ClearTx(ctx, tx, cart.CartID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("order paid",
		zap.String("order_id", order.OrderID.String()),
		zap.String("razorpay_order_id", payload.RazorpayOrderID),
		zap.String("razorpay_payment_id", payload.RazorpayPaymentID))

	return nil
}
