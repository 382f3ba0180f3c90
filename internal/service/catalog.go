package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petalcart/internal/dto"
	"petalcart/internal/model"
	"petalcart/internal/repository"
)

type CatalogService interface {
	CreateShop(ctx context.Context, ownerID string, req *dto.CreateShopRequest) (*model.FlowerShop, error)
	ListShops(ctx context.Context) ([]*model.FlowerShop, error)
	CreateFlower(ctx context.Context, ownerID string, req *dto.CreateFlowerRequest) (*model.Flower, error)
	ListFlowers(ctx context.Context) ([]*model.Flower, error)
	GetFlower(ctx context.Context, flowerID uuid.UUID) (*dto.FlowerDetail, error)
	// Restock adds quantity to the owner's flower, creating the stock
	// record on first entry.
	Restock(ctx context.Context, ownerID string, flowerID uuid.UUID, qty int64) (*model.Stock, error)
}

type catalogServiceImpl struct {
	shopRepo    repository.ShopRepository
	flowerRepo  repository.FlowerRepository
	stockRepo   repository.StockRepository
	commentRepo repository.CommentRepository
}

func NewCatalogService(
	shopRepo repository.ShopRepository,
	flowerRepo repository.FlowerRepository,
	stockRepo repository.StockRepository,
	commentRepo repository.CommentRepository,
) CatalogService {
	return &catalogServiceImpl{
		shopRepo:    shopRepo,
		flowerRepo:  flowerRepo,
		stockRepo:   stockRepo,
		commentRepo: commentRepo,
	}
}

func (s *catalogServiceImpl) CreateShop(ctx context.Context, ownerID string, req *dto.CreateShopRequest) (*model.FlowerShop, error) {
	if _, err := s.shopRepo.FindByOwner(ctx, ownerID); err == nil {
		return nil, ErrShopExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find shop by owner: %w", err)
	}

	shop := &model.FlowerShop{
		ShopID:      uuid.New(),
		ShopName:    req.ShopName,
		ShopAddress: req.ShopAddress,
		OwnerID:     ownerID,
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("create shop: %w", err)
	}

	return shop, nil
}

func (s *catalogServiceImpl) ListShops(ctx context.Context) ([]*model.FlowerShop, error) {
	return s.shopRepo.List(ctx)
}

func (s *catalogServiceImpl) CreateFlower(ctx context.Context, ownerID string, req *dto.CreateFlowerRequest) (*model.Flower, error) {
	if req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	shop, err := s.shopRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find shop by owner: %w", err)
	}

	flower := &model.Flower{
		FlowerID:   uuid.New(),
		ShopID:     shop.ShopID,
		FlowerName: req.FlowerName,
		Desc:       req.Desc,
		ImageURL:   req.ImageURL,
		Price:      req.Price,
	}
	if err := s.flowerRepo.Create(ctx, flower); err != nil {
		return nil, fmt.Errorf("create flower: %w", err)
	}

	return flower, nil
}

func (s *catalogServiceImpl) ListFlowers(ctx context.Context) ([]*model.Flower, error) {
	return s.flowerRepo.List(ctx)
}

func (s *catalogServiceImpl) GetFlower(ctx context.Context, flowerID uuid.UUID) (*dto.FlowerDetail, error) {
	flower, err := s.flowerRepo.FindByID(ctx, flowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get flower: %w", err)
	}

	detail := &dto.FlowerDetail{Flower: flower}

	stock, err := s.stockRepo.Get(ctx, flowerID)
	switch {
	case err == nil:
		detail.Available = stock.Quantity
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no record displays as zero available
	default:
		return nil, fmt.Errorf("get stock: %w", err)
	}

	comments, err := s.commentRepo.ListByFlower(ctx, flowerID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	detail.Comments = comments

	return detail, nil
}

func (s *catalogServiceImpl) Restock(ctx context.Context, ownerID string, flowerID uuid.UUID, qty int64) (*model.Stock, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	shop, err := s.shopRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find shop by owner: %w", err)
	}

	flower, err := s.flowerRepo.FindByID(ctx, flowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get flower: %w", err)
	}
	// another owner's flower looks like a missing one
	if flower.ShopID != shop.ShopID {
		return nil, ErrNotFound
	}

	err = s.stockRepo.Upsert(ctx, &model.Stock{
		FlowerID: flowerID,
		ShopID:   shop.ShopID,
		Quantity: qty,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert stock: %w", err)
	}

	return s.stockRepo.Get(ctx, flowerID)
}
