package repository

import (
	"context"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type ProductReviewGormRepository struct {
	db *gorm.DB
}

func NewProductReviewGormRepository(db *gorm.DB) *ProductReviewGormRepository {
	return &ProductReviewGormRepository{db: db}
}

func (r *ProductReviewGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.ProductReview, error) {
	var reviews []model.ProductReview
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("helpful_count desc, created_at desc").
		Find(&reviews).Error
	if err != nil {
		return []model.ProductReview{}, err
	}
	return reviews, nil
}

func (r *ProductReviewGormRepository) FindByID(ctx context.Context, reviewID int64) (model.ProductReview, error) {
	var rv model.ProductReview
	err := r.db.WithContext(ctx).Preload("User").First(&rv, reviewID).Error
	if isNotFound(err) {
		return model.ProductReview{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductReview{}, err
	}
	return rv, nil
}

func (r *ProductReviewGormRepository) ExistsByProductAndUser(ctx context.Context, productID int64, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductReview{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductReviewGormRepository) Create(ctx context.Context, rv model.ProductReview) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&rv).Error; err != nil {
		return 0, err
	}
	return rv.ID, nil
}

func (r *ProductReviewGormRepository) IncrementHelpfulCount(ctx context.Context, reviewID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.ProductReview{}).
		Where("id = ?", reviewID).
		Update("helpful_count", gorm.Expr("helpful_count + 1"))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
