package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"petalcart/internal/model"
)

type StockRepository interface {
	Get(ctx context.Context, flowerID uuid.UUID) (*model.Stock, error)
	GetTx(ctx context.Context, tx *gorm.DB, flowerID uuid.UUID) (*model.Stock, error)
	// Upsert adds quantity to the flower's stock, creating the record on
	// first entry.
	Upsert(ctx context.Context, stock *model.Stock) error
	// Decrement subtracts qty guarded by `quantity >= qty` so the check and
	// the write are one statement. Returns the number of rows updated: zero
	// means the guard failed and nothing changed.
	Decrement(ctx context.Context, tx *gorm.DB, flowerID uuid.UUID, qty int64) (int64, error)
}

type stockRepoImpl struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepoImpl{
		db: db,
	}
}

func (r *stockRepoImpl) Get(ctx context.Context, flowerID uuid.UUID) (*model.Stock, error) {
	return r.GetTx(ctx, r.db, flowerID)
}

func (r *stockRepoImpl) GetTx(ctx context.Context, tx *gorm.DB, flowerID uuid.UUID) (*model.Stock, error) {
	var stock model.Stock
	err := tx.WithContext(ctx).
		Where("flower_id = ?", flowerID).
		First(&stock).Error

	if err != nil {
		return nil, err
	}

	return &stock, nil
}

func (r *stockRepoImpl) Upsert(ctx context.Context, stock *model.Stock) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "flower_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("stocks.quantity + ?", stock.Quantity),
			"updated_at": time.Now(),
		}),
	}).Create(stock).Error
}

func (r *stockRepoImpl) Decrement(ctx context.Context, tx *gorm.DB, flowerID uuid.UUID, qty int64) (int64, error) {
	result := tx.WithContext(ctx).Model(&model.Stock{}).
		Where("flower_id = ? AND quantity >= ?", flowerID, qty).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now(),
		})

	return result.RowsAffected, result.Error
}
