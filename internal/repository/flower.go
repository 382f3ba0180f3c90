package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petalcart/internal/model"
)

type FlowerRepository interface {
	Create(ctx context.Context, flower *model.Flower) error
	FindByID(ctx context.Context, flowerID uuid.UUID) (*model.Flower, error)
	FindMany(ctx context.Context, flowerIDs []uuid.UUID) ([]*model.Flower, error)
	List(ctx context.Context) ([]*model.Flower, error)
}

type flowerRepoImpl struct {
	db *gorm.DB
}

func NewFlowerRepository(db *gorm.DB) FlowerRepository {
	return &flowerRepoImpl{
		db: db,
	}
}

func (r *flowerRepoImpl) Create(ctx context.Context, flower *model.Flower) error {
	return r.db.WithContext(ctx).Create(flower).Error
}

func (r *flowerRepoImpl) FindByID(ctx context.Context, flowerID uuid.UUID) (*model.Flower, error) {
	var flower model.Flower
	err := r.db.WithContext(ctx).
		Where("flower_id = ?", flowerID).
		First(&flower).Error

	if err != nil {
		return nil, err
	}

	return &flower, nil
}

func (r *flowerRepoImpl) FindMany(ctx context.Context, flowerIDs []uuid.UUID) ([]*model.Flower, error) {
	var flowers []*model.Flower
	err := r.db.WithContext(ctx).
		Where("flower_id IN ?", flowerIDs).
		Find(&flowers).Error

	if err != nil {
		return nil, err
	}

	return flowers, nil
}

func (r *flowerRepoImpl) List(ctx context.Context) ([]*model.Flower, error) {
	var flowers []*model.Flower
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&flowers).Error

	if err != nil {
		return nil, err
	}

	return flowers, nil
}
