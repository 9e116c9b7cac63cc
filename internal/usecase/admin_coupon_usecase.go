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

type AdminCouponUsecase struct {
	couponRepo repo.CouponRepository
	auditRepo  repo.AuditLogRepository
}

func NewAdminCouponUsecase(couponRepo repo.CouponRepository, auditRepo repo.AuditLogRepository) *AdminCouponUsecase {
	return &AdminCouponUsecase{couponRepo: couponRepo, auditRepo: auditRepo}
}

type AdminCouponInput struct {
	Code              string           `json:"code"`
	Description       string           `json:"description"`
	DiscountType      string           `json:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MinPurchaseAmount decimal.Decimal  `json:"min_purchase_amount"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	IsActive          bool             `json:"is_active"`
	ValidFrom         time.Time        `json:"valid_from"`
	ValidUntil        time.Time        `json:"valid_until"`
	UsageLimit        *int64           `json:"usage_limit"`
}

func (in *AdminCouponInput) validate() error {
	if strings.TrimSpace(in.Code) == "" {
		return NewHTTPError(http.StatusBadRequest, "code required")
	}
	switch model.DiscountType(in.DiscountType) {
	case model.DiscountTypePercentage, model.DiscountTypeFixed:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid discount_type")
	}
	if !in.DiscountValue.IsPositive() {
		return NewHTTPError(http.StatusBadRequest, "discount_value must be > 0")
	}
	if in.MinPurchaseAmount.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "min_purchase_amount must be >= 0")
	}
	if in.MaxDiscountAmount != nil && !in.MaxDiscountAmount.IsPositive() {
		return NewHTTPError(http.StatusBadRequest, "max_discount_amount must be > 0")
	}
	if !in.ValidUntil.After(in.ValidFrom) {
		return NewHTTPError(http.StatusBadRequest, "valid_until must be after valid_from")
	}
	if in.UsageLimit != nil && *in.UsageLimit < 1 {
		return NewHTTPError(http.StatusBadRequest, "usage_limit must be >= 1")
	}
	return nil
}

func (in *AdminCouponInput) toModel() model.Coupon {
	return model.Coupon{
		Code:              strings.ToUpper(strings.TrimSpace(in.Code)),
		Description:       in.Description,
		DiscountType:      model.DiscountType(in.DiscountType),
		DiscountValue:     in.DiscountValue,
		MinPurchaseAmount: in.MinPurchaseAmount,
		MaxDiscountAmount: in.MaxDiscountAmount,
		IsActive:          in.IsActive,
		ValidFrom:         in.ValidFrom,
		ValidUntil:        in.ValidUntil,
		UsageLimit:        in.UsageLimit,
	}
}

func (u *AdminCouponUsecase) Create(ctx context.Context, actorAdminUserID int64, in AdminCouponInput) (model.Coupon, error) {
	if actorAdminUserID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return model.Coupon{}, err
	}

	c := in.toModel()

	//コード重複は先に弾く（uniqueIndexはあるがメッセージを分けたい）
	if _, err := u.couponRepo.FindByCode(ctx, c.Code); err == nil {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "coupon code already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	id, err := u.couponRepo.Create(ctx, c)
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	c.ID = id

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpsertCoupon,
		ResourceType: model.AuditResourceCoupon,
		ResourceID:   id,
		AfterJSON:    auditJSON(map[string]any{"code": c.Code}),
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return c, nil
}

func (u *AdminCouponUsecase) Update(ctx context.Context, actorAdminUserID int64, couponID int64, in AdminCouponInput) (model.Coupon, error) {
	if actorAdminUserID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if couponID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return model.Coupon{}, err
	}

	existing, err := u.couponRepo.FindByID(ctx, couponID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c := in.toModel()
	c.ID = existing.ID
	//used_countは管理画面から書き換えない
	c.UsedCount = existing.UsedCount
	c.CreatedAt = existing.CreatedAt

	if err := u.couponRepo.Update(ctx, c); err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpsertCoupon,
		ResourceType: model.AuditResourceCoupon,
		ResourceID:   c.ID,
		BeforeJSON:   auditJSON(map[string]any{"code": existing.Code, "is_active": existing.IsActive}),
		AfterJSON:    auditJSON(map[string]any{"code": c.Code, "is_active": c.IsActive}),
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return c, nil
}

func (u *AdminCouponUsecase) List(ctx context.Context, f repo.CouponListFilter) ([]model.Coupon, int64, error) {
	if f.Page < 1 {
		return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.couponRepo.ListAdmin(ctx, f)
	if err != nil {
		return nil, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, total, nil
}
