package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo    repo.ProductReviewRepository
	productRepo   repo.ProductRepository
	orderItemRepo repo.OrderItemRepository
}

// DI
func NewReviewUsecase(
	reviewRepo repo.ProductReviewRepository,
	productRepo repo.ProductRepository,
	orderItemRepo repo.OrderItemRepository,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:    reviewRepo,
		productRepo:   productRepo,
		orderItemRepo: orderItemRepo,
	}
}

type ReviewDTO struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	UserEmail          string    `json:"user_email"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title"`
	Comment            string    `json:"comment"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	HelpfulCount       int64     `json:"helpful_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ReviewListOutput struct {
	Items []ReviewDTO `json:"items"`
	Count int         `json:"count"`
}

type CreateReviewInput struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

func (u *ReviewUsecase) ListProductReviews(ctx context.Context, productID int64) (ReviewListOutput, error) {
	if productID <= 0 {
		return ReviewListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	//商品の存在確認（404とemptyを区別する）
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ReviewListOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return ReviewListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	reviews, err := u.reviewRepo.ListByProductID(ctx, productID)
	if err != nil {
		return ReviewListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]ReviewDTO, 0, len(reviews))
	for _, rv := range reviews {
		items = append(items, toReviewDTO(rv))
	}
	return ReviewListOutput{Items: items, Count: len(items)}, nil
}

func (u *ReviewUsecase) CreateReview(ctx context.Context, userID int64, productID int64, in CreateReviewInput) (ReviewDTO, error) {
	if userID <= 0 {
		return ReviewDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return ReviewDTO{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return ReviewDTO{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}
	if len(in.Title) > 200 {
		return ReviewDTO{}, NewHTTPError(http.StatusBadRequest, "title too long")
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return ReviewDTO{}, NewHTTPError(http.StatusBadRequest, "comment is required")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ReviewDTO{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return ReviewDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//1ユーザー1商品1レビュー
	exists, err := u.reviewRepo.ExistsByProductAndUser(ctx, productID, userID)
	if err != nil {
		return ReviewDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return ReviewDTO{}, NewHTTPError(http.StatusConflict, "already reviewed this product")
	}

	//購入済みバッジは投稿時点の注文実績で決める
	purchased, err := u.orderItemRepo.ExistsPurchasedByUser(ctx, userID, productID)
	if err != nil {
		return ReviewDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rv := model.ProductReview{
		ProductID:          productID,
		UserID:             userID,
		Rating:             in.Rating,
		Title:              strings.TrimSpace(in.Title),
		Comment:            comment,
		IsVerifiedPurchase: purchased,
	}
	id, err := u.reviewRepo.Create(ctx, rv)
	if err != nil {
		return ReviewDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return ReviewDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toReviewDTO(created), nil
}

func (u *ReviewUsecase) MarkReviewHelpful(ctx context.Context, userID int64, reviewID int64) (ReviewDTO, error) {
	if userID <= 0 {
		return ReviewDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if reviewID <= 0 {
		return ReviewDTO{}, NewHTTPError(http.StatusBadRequest, "invalid review id")
	}

	if err := u.reviewRepo.IncrementHelpfulCount(ctx, reviewID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ReviewDTO{}, NewHTTPError(http.StatusNotFound, "review not found")
		}
		return ReviewDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rv, err := u.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return ReviewDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toReviewDTO(rv), nil
}

func toReviewDTO(rv model.ProductReview) ReviewDTO {
	email := ""
	if rv.User != nil {
		email = maskEmail(rv.User.Email)
	}
	return ReviewDTO{
		ID:                 rv.ID,
		UserID:             rv.UserID,
		UserEmail:          email,
		Rating:             rv.Rating,
		Title:              rv.Title,
		Comment:            rv.Comment,
		IsVerifiedPurchase: rv.IsVerifiedPurchase,
		HelpfulCount:       rv.HelpfulCount,
		CreatedAt:          rv.CreatedAt,
		UpdatedAt:          rv.UpdatedAt,
	}
}

// ローカル部の先頭と末尾だけ残して伏せる（a***e@example.com）
func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	if len(local) <= 2 {
		return strings.Repeat("*", len(local)) + "@" + domain
	}
	return local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:] + "@" + domain
}
