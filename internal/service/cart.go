package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"petalcart/internal/dto"
	"petalcart/internal/model"
	"petalcart/internal/repository"
)

type CartService interface {
	Get(ctx context.Context, userID string) (*dto.CartView, error)
	Add(ctx context.Context, userID string, flowerID uuid.UUID, qty int64) error
	// SetQuantity updates a line item; a quantity of zero or less removes
	// it, a quantity above the available stock is rejected with the
	// available count.
	SetQuantity(ctx context.Context, userID string, itemID uint, qty int64) error
	Remove(ctx context.Context, userID string, itemID uint) error
}

type cartServiceImpl struct {
	cartRepo   repository.CartRepository
	flowerRepo repository.FlowerRepository
	stockRepo  repository.StockRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	flowerRepo repository.FlowerRepository,
	stockRepo repository.StockRepository,
) CartService {
	return &cartServiceImpl{
		cartRepo:   cartRepo,
		flowerRepo: flowerRepo,
		stockRepo:  stockRepo,
	}
}

func (s *cartServiceImpl) Get(ctx context.Context, userID string) (*dto.CartView, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}

	items, err := s.cartRepo.ListItems(ctx, cart.CartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	view := &dto.CartView{
		CartID: cart.CartID,
		Items:  make([]dto.CartLine, 0, len(items)),
		Total:  decimal.Zero,
	}
	if len(items) == 0 {
		return view, nil
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

	// live prices: the cart total is a preview, unlike an order total
	for _, item := range items {
		flower, ok := flowerByID[item.FlowerID]
		if !ok {
			continue
		}
		// a line whose flower lost its stock record is no longer purchasable
		if _, err := s.stockRepo.Get(ctx, item.FlowerID); errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
				return nil, fmt.Errorf("prune cart item: %w", err)
			}
			continue
		} else if err != nil {
			return nil, fmt.Errorf("get stock: %w", err)
		}
		lineTotal := flower.Price.Mul(decimal.NewFromInt(item.Quantity))
		view.Items = append(view.Items, dto.CartLine{
			ItemID:     item.ID,
			FlowerID:   item.FlowerID,
			FlowerName: flower.FlowerName,
			UnitPrice:  flower.Price,
			Quantity:   item.Quantity,
			LineTotal:  lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}

	return view, nil
}

func (s *cartServiceImpl) Add(ctx context.Context, userID string, flowerID uuid.UUID, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	if _, err := s.flowerRepo.FindByID(ctx, flowerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get flower: %w", err)
	}

	// only flowers with a stock record can enter a cart
	if _, err := s.stockRepo.Get(ctx, flowerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoStockRecord
		}
		return fmt.Errorf("get stock: %w", err)
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("get or create cart: %w", err)
	}

	err = s.cartRepo.AddItem(ctx, &model.CartItem{
		CartID:   cart.CartID,
		FlowerID: flowerID,
		Quantity: qty,
	})
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}

	return nil
}

func (s *cartServiceImpl) SetQuantity(ctx context.Context, userID string, itemID uint, qty int64) error {
	item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if qty <= 0 {
		if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
			return fmt.Errorf("delete cart item: %w", err)
		}
		return nil
	}

	stock, err := s.stockRepo.Get(ctx, item.FlowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoStockRecord
		}
		return fmt.Errorf("get stock: %w", err)
	}
	if qty > stock.Quantity {
		return &InsufficientStockError{Available: stock.Quantity}
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, item.ID, qty); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}

	return nil
}

func (s *cartServiceImpl) Remove(ctx context.Context, userID string, itemID uint) error {
	item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	return nil
}

// findOwnedItem resolves a line item through the requesting user's own cart.
// Items in other carts come back as ErrNotFound, not a permission error, so
// an id probe reveals nothing.
func (s *cartServiceImpl) findOwnedItem(ctx context.Context, userID string, itemID uint) (*model.CartItem, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	item, err := s.cartRepo.GetItem(ctx, cart.CartID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}

	return item, nil
}
