package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petalcart/internal/model"
	"petalcart/internal/repository"
)

type ReviewService interface {
	ListComments(ctx context.Context, flowerID uuid.UUID) ([]*model.Comment, error)
	CreateComment(ctx context.Context, userID string, flowerID uuid.UUID, body string) (*model.Comment, error)
}

type reviewServiceImpl struct {
	flowerRepo  repository.FlowerRepository
	commentRepo repository.CommentRepository
}

func NewReviewService(flowerRepo repository.FlowerRepository, commentRepo repository.CommentRepository) ReviewService {
	return &reviewServiceImpl{
		flowerRepo:  flowerRepo,
		commentRepo: commentRepo,
	}
}

func (s *reviewServiceImpl) ListComments(ctx context.Context, flowerID uuid.UUID) ([]*model.Comment, error) {
	if _, err := s.flowerRepo.FindByID(ctx, flowerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get flower: %w", err)
	}

	return s.commentRepo.ListByFlower(ctx, flowerID)
}

func (s *reviewServiceImpl) CreateComment(ctx context.Context, userID string, flowerID uuid.UUID, body string) (*model.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyComment
	}

	if _, err := s.flowerRepo.FindByID(ctx, flowerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get flower: %w", err)
	}

	comment := &model.Comment{
		CommentID: uuid.New(),
		FlowerID:  flowerID,
		UserID:    userID,
		Body:      body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return comment, nil
}
