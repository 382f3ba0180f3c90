package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petalcart/internal/model"
)

type OrderRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateItemsTx(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*model.Order, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	// MarkPaid transitions PENDING -> PAID guarded by the current status so
	// only one of several concurrent callbacks wins. Returns the number of
	// rows updated.
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, paymentID string) (int64, error)
	GetItemsTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]*model.OrderItem, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) CreateTx(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateItemsTx(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("razorpay_order_id = ?", razorpayOrderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, paymentID string) (int64, error) {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":              model.OrderStatusPaid,
			"razorpay_payment_id": paymentID,
			"updated_at":          time.Now(),
		})

	return result.RowsAffected, result.Error
}

func (r *orderRepoImpl) GetItemsTx(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}
