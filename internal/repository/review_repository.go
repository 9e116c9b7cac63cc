package repository

import (
	"context"

	"shop/internal/domain/model"
)

type ProductReviewRepository interface {
	//役に立った数の多い順→新しい順
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductReview, error)

	FindByID(ctx context.Context, reviewID int64) (model.ProductReview, error)
	ExistsByProductAndUser(ctx context.Context, productID int64, userID int64) (bool, error)
	Create(ctx context.Context, rv model.ProductReview) (int64, error)

	//helpful_countを+1。該当行がなければErrNotFound。
	IncrementHelpfulCount(ctx context.Context, reviewID int64) error
}
