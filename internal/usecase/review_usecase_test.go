package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewUsecase() (*ReviewRepoMock, *ProductRepoMock, *OrderItemRepoMock, *usecase.ReviewUsecase) {
	reviews := new(ReviewRepoMock)
	products := new(ProductRepoMock)
	orderItems := new(OrderItemRepoMock)
	return reviews, products, orderItems, usecase.NewReviewUsecase(reviews, products, orderItems)
}

func TestReviewUsecase_List_ProductNotFound(t *testing.T) {
	reviews, products, _, uc := newReviewUsecase()

	products.On("FindByID", mock.Anything, int64(404)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.ListProductReviews(context.Background(), 404)
	assertErrContains(t, err, "not found")

	reviews.AssertNotCalled(t, "ListByProductID", mock.Anything, mock.Anything)
}

// helpful数降順で返ってきた並びをそのまま返す。メールはマスクされる。
func TestReviewUsecase_List_Success(t *testing.T) {
	reviews, products, _, uc := newReviewUsecase()

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1}, nil)
	reviews.On("ListByProductID", mock.Anything, int64(1)).Return([]model.ProductReview{
		{ID: 2, ProductID: 1, UserID: 8, Rating: 5, Comment: "good", HelpfulCount: 3,
			User: &model.User{ID: 8, Email: "alice@example.com"}},
		{ID: 1, ProductID: 1, UserID: 9, Rating: 3, Comment: "ok", HelpfulCount: 0},
	}, nil)

	out, err := uc.ListProductReviews(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, int64(2), out.Items[0].ID)
	assert.Equal(t, "a***e@example.com", out.Items[0].UserEmail)
	// Userが載っていなければメールは出さない
	assert.Equal(t, "", out.Items[1].UserEmail)
}

func TestReviewUsecase_Create_InvalidRating(t *testing.T) {
	_, _, _, uc := newReviewUsecase()

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.CreateReview(context.Background(), 8, 1, usecase.CreateReviewInput{Rating: rating, Comment: "x"})
		assertErrContains(t, err, "rating must be between 1 and 5")
	}
}

func TestReviewUsecase_Create_EmptyComment(t *testing.T) {
	_, _, _, uc := newReviewUsecase()

	_, err := uc.CreateReview(context.Background(), 8, 1, usecase.CreateReviewInput{Rating: 4, Comment: "   "})
	assertErrContains(t, err, "comment is required")
}

func TestReviewUsecase_Create_AlreadyReviewed(t *testing.T) {
	reviews, products, orderItems, uc := newReviewUsecase()

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1}, nil)
	reviews.On("ExistsByProductAndUser", mock.Anything, int64(1), int64(8)).Return(true, nil)

	_, err := uc.CreateReview(context.Background(), 8, 1, usecase.CreateReviewInput{Rating: 4, Comment: "again"})
	assertErrContains(t, err, "already reviewed this product")

	orderItems.AssertNotCalled(t, "ExistsPurchasedByUser", mock.Anything, mock.Anything, mock.Anything)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 注文実績があればis_verified_purchase=trueで保存される
func TestReviewUsecase_Create_VerifiedPurchase(t *testing.T) {
	reviews, products, orderItems, uc := newReviewUsecase()

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1}, nil)
	reviews.On("ExistsByProductAndUser", mock.Anything, int64(1), int64(8)).Return(false, nil)
	orderItems.On("ExistsPurchasedByUser", mock.Anything, int64(8), int64(1)).Return(true, nil)

	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv model.ProductReview) bool {
		return rv.ProductID == 1 &&
			rv.UserID == 8 &&
			rv.Rating == 5 &&
			rv.Title == "great" &&
			rv.Comment == "five stars" &&
			rv.IsVerifiedPurchase
	})).Return(int64(10), nil)

	reviews.On("FindByID", mock.Anything, int64(10)).Return(model.ProductReview{
		ID: 10, ProductID: 1, UserID: 8, Rating: 5, Title: "great", Comment: "five stars",
		IsVerifiedPurchase: true,
		User:               &model.User{ID: 8, Email: "bob@example.com"},
	}, nil)

	out, err := uc.CreateReview(context.Background(), 8, 1, usecase.CreateReviewInput{
		Rating: 5, Title: " great ", Comment: "five stars",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.ID)
	assert.True(t, out.IsVerifiedPurchase)
	assert.Equal(t, "b*b@example.com", out.UserEmail)

	reviews.AssertExpectations(t)
}

func TestReviewUsecase_Create_UnverifiedWithoutPurchase(t *testing.T) {
	reviews, products, orderItems, uc := newReviewUsecase()

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1}, nil)
	reviews.On("ExistsByProductAndUser", mock.Anything, int64(1), int64(8)).Return(false, nil)
	orderItems.On("ExistsPurchasedByUser", mock.Anything, int64(8), int64(1)).Return(false, nil)

	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv model.ProductReview) bool {
		return !rv.IsVerifiedPurchase
	})).Return(int64(11), nil)
	reviews.On("FindByID", mock.Anything, int64(11)).Return(model.ProductReview{ID: 11}, nil)

	out, err := uc.CreateReview(context.Background(), 8, 1, usecase.CreateReviewInput{Rating: 2, Comment: "meh"})
	assert.NoError(t, err)
	assert.False(t, out.IsVerifiedPurchase)
}

func TestReviewUsecase_MarkHelpful_NotFound(t *testing.T) {
	reviews, _, _, uc := newReviewUsecase()

	reviews.On("IncrementHelpfulCount", mock.Anything, int64(404)).Return(repo.ErrNotFound)

	_, err := uc.MarkReviewHelpful(context.Background(), 8, 404)
	assertErrContains(t, err, "review not found")
}

func TestReviewUsecase_MarkHelpful_Success(t *testing.T) {
	reviews, _, _, uc := newReviewUsecase()

	reviews.On("IncrementHelpfulCount", mock.Anything, int64(10)).Return(nil)
	reviews.On("FindByID", mock.Anything, int64(10)).Return(model.ProductReview{ID: 10, HelpfulCount: 4}, nil)

	out, err := uc.MarkReviewHelpful(context.Background(), 8, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), out.HelpfulCount)

	reviews.AssertExpectations(t)
}
