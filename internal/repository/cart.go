package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"petalcart/internal/model"
)

type CartRepository interface {
	// GetOrCreate returns the user's cart, creating it lazily. Exactly one
	// cart exists per user.
	GetOrCreate(ctx context.Context, userID string) (*model.Cart, error)
	FindByUser(ctx context.Context, userID string) (*model.Cart, error)
	// AddItem inserts a line item or, if the (cart, flower) pair already
	// exists, increments its quantity. Safe against double submits.
	AddItem(ctx context.Context, item *model.CartItem) error
	// GetItem is scoped to the given cart so an item id alone is never
	// enough to reach another user's cart.
	GetItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*model.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uint, qty int64) error
	DeleteItem(ctx context.Context, itemID uint) error
	ListItems(ctx context.Context, cartID uuid.UUID) ([]*model.CartItem, error)
	ClearTx(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) GetOrCreate(ctx context.Context, userID string) (*model.Cart, error) {
	cart := model.Cart{
		CartID: uuid.New(),
		UserID: userID,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUser(ctx, userID)
}

func (r *cartRepoImpl) FindByUser(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) AddItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "flower_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", item.Quantity),
			"updated_at": time.Now(),
		}),
	}).Create(item).Error
}

func (r *cartRepoImpl) GetItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) UpdateItemQuantity(ctx context.Context, itemID uint, qty int64) error {
	return r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"quantity":   qty,
			"updated_at": time.Now(),
		}).Error
}

func (r *cartRepoImpl) DeleteItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).
		Delete(&model.CartItem{}, itemID).Error
}

func (r *cartRepoImpl) ListItems(ctx context.Context, cartID uuid.UUID) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) ClearTx(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) error {
	return tx.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
