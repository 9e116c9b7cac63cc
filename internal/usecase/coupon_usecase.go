package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
)

type CouponUsecase struct {
	couponRepo repo.CouponRepository
}

func NewCouponUsecase(couponRepo repo.CouponRepository) *CouponUsecase {
	return &CouponUsecase{couponRepo: couponRepo}
}

type CouponPreviewInput struct {
	Code   string
	Amount decimal.Decimal
}

type CouponPreviewOutput struct {
	Coupon         model.Coupon    `json:"coupon"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// 有効期間内のクーポン一覧
func (u *CouponUsecase) ListActive(ctx context.Context) ([]model.Coupon, error) {
	items, err := u.couponRepo.ListActive(ctx, time.Now())
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// Preview は割引額の見積もりだけを返す。used_countは増やさない。
// 注文確定（CreateOrder）と同じValidate/CalculateDiscountを通るので金額は一致する。
func (u *CouponUsecase) Preview(ctx context.Context, in CouponPreviewInput) (CouponPreviewOutput, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return CouponPreviewOutput{}, NewHTTPError(http.StatusBadRequest, "code required")
	}
	if in.Amount.IsNegative() {
		return CouponPreviewOutput{}, NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	c, err := u.couponRepo.FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return CouponPreviewOutput{}, NewHTTPError(http.StatusBadRequest, "invalid coupon code")
	}
	if err != nil {
		return CouponPreviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := c.Validate(time.Now(), in.Amount); err != nil {
		return CouponPreviewOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return CouponPreviewOutput{
		Coupon:         c,
		DiscountAmount: c.CalculateDiscount(in.Amount),
	}, nil
}
