package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

// ReviewRepository stores links between original tasks and their
// spaced-repetition follow-ups.
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) CreateLink(ctx context.Context, originalID, reviewID uint, intervalDays int) error {
	link := model.ReviewLink{
		OriginalTaskID: originalID,
		ReviewTaskID:   reviewID,
		IntervalDays:   intervalDays,
	}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return fmt.Errorf("create review link: %w", err)
	}
	return nil
}

func (r *ReviewRepository) ListLinks(ctx context.Context) ([]model.ReviewLink, error) {
	var links []model.ReviewLink
	if err := r.db.WithContext(ctx).Order("id").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list review links: %w", err)
	}
	return links, nil
}
