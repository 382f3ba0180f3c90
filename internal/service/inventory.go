package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petalcart/internal/repository"
)

// InventoryService guards the per-flower stock counters. Availability is
// checked up front for a fast rejection and re-validated by the guarded
// decrement at commit time, closing the race between the two.
type InventoryService interface {
	ValidateAvailability(ctx context.Context, flowerID uuid.UUID, qty int64) error
	// Decrement must run inside the same transaction as the order-state
	// change it accompanies.
	Decrement(ctx context.Context, tx *gorm.DB, flowerID uuid.UUID, qty int64) error
}

type inventoryServiceImpl struct {
	stockRepo repository.StockRepository
}

func NewInventoryService(stockRepo repository.StockRepository) InventoryService {
	return &inventoryServiceImpl{
		stockRepo: stockRepo,
	}
}

func (s *inventoryServiceImpl) ValidateAvailability(ctx context.Context, flowerID uuid.UUID, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	stock, err := s.stockRepo.Get(ctx, flowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// no stock record means not purchasable, never unlimited
			return ErrNoStockRecord
		}
		return fmt.Errorf("get stock: %w", err)
	}

	if qty > stock.Quantity {
		return &InsufficientStockError{Available: stock.Quantity}
	}

	return nil
}

func (s *inventoryServiceImpl) Decrement(ctx context.Context, tx *gorm.DB, flowerID uuid.UUID, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	rows, err := s.stockRepo.Decrement(ctx, tx, flowerID, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if rows > 0 {
		return nil
	}

	// The guard failed: either the record is gone or the quantity dropped
	// below the request since validation.
	stock, err := s.stockRepo.GetTx(ctx, tx, flowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoStockRecord
		}
		return fmt.Errorf("re-read stock: %w", err)
	}

	return &InsufficientStockError{Available: stock.Quantity}
}
