package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petalcart/internal/model"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *model.FlowerShop) error
	FindByID(ctx context.Context, shopID uuid.UUID) (*model.FlowerShop, error)
	FindByOwner(ctx context.Context, ownerID string) (*model.FlowerShop, error)
	List(ctx context.Context) ([]*model.FlowerShop, error)
}

type shopRepoImpl struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepoImpl{
		db: db,
	}
}

func (r *shopRepoImpl) Create(ctx context.Context, shop *model.FlowerShop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *shopRepoImpl) FindByID(ctx context.Context, shopID uuid.UUID) (*model.FlowerShop, error) {
	var shop model.FlowerShop
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		First(&shop).Error

	if err != nil {
		return nil, err
	}

	return &shop, nil
}

func (r *shopRepoImpl) FindByOwner(ctx context.Context, ownerID string) (*model.FlowerShop, error) {
	var shop model.FlowerShop
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&shop).Error

	if err != nil {
		return nil, err
	}

	return &shop, nil
}

func (r *shopRepoImpl) List(ctx context.Context) ([]*model.FlowerShop, error) {
	var shops []*model.FlowerShop
	err := r.db.WithContext(ctx).Find(&shops).Error
	if err != nil {
		return nil, err
	}

	return shops, nil
}
