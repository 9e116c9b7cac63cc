package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// 検証エラーはユーザーに区別して見せる（メッセージがそのままAPIに出る）
var (
	ErrCouponInactive     = errors.New("this coupon is not active")
	ErrCouponNotYetActive = errors.New("this coupon is not yet active")
	ErrCouponExpired      = errors.New("this coupon has expired")
	ErrCouponLimitReached = errors.New("this coupon has reached its usage limit")
	ErrCouponMinPurchase  = errors.New("minimum purchase amount not met")
)

type Coupon struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//コードは大文字で保存し、入力はtrim+upperで正規化して照合する
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Description string `gorm:"type:varchar(255)" json:"description"`

	DiscountType  DiscountType    `gorm:"type:varchar(20);not null;default:'percentage'" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discount_value"`

	MinPurchaseAmount decimal.Decimal  `gorm:"type:numeric(10,2);not null;default:0" json:"min_purchase_amount"`
	MaxDiscountAmount *decimal.Decimal `gorm:"type:numeric(10,2)" json:"max_discount_amount"`

	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	ValidFrom  time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil time.Time `gorm:"not null" json:"valid_until"`

	//nullなら無制限
	UsageLimit *int64 `json:"usage_limit"`
	UsedCount  int64  `gorm:"not null;default:0" json:"used_count"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Validate は時刻・利用回数・最低購入額の条件を順に確認する。副作用なし。
func (c *Coupon) Validate(now time.Time, subtotal decimal.Decimal) error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if now.Before(c.ValidFrom) {
		return ErrCouponNotYetActive
	}
	if now.After(c.ValidUntil) {
		return ErrCouponExpired
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return ErrCouponLimitReached
	}
	if subtotal.LessThan(c.MinPurchaseAmount) {
		return ErrCouponMinPurchase
	}
	return nil
}

// CalculateDiscount は割引額を返す。常に [0, subtotal] に収め、2桁に丸める。
// preview（/coupons/validate）と注文確定の両方がここを通るので金額がぶれない。
func (c *Coupon) CalculateDiscount(subtotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal

	switch c.DiscountType {
	case DiscountTypePercentage:
		d = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
		if c.MaxDiscountAmount != nil && d.GreaterThan(*c.MaxDiscountAmount) {
			d = *c.MaxDiscountAmount
		}
	default: //fixed
		d = c.DiscountValue
	}

	if d.GreaterThan(subtotal) {
		d = subtotal
	}
	if d.IsNegative() {
		d = decimal.Zero
	}
	return d.Round(2)
}

// クーポン利用記録。(coupon, user, order)で一意。注文キャンセル時に削除される。
type CouponUsage struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CouponID       int64           `gorm:"not null;uniqueIndex:idx_coupon_usages_triple" json:"coupon_id"`
	UserID         int64           `gorm:"not null;uniqueIndex:idx_coupon_usages_triple;index" json:"user_id"`
	OrderID        int64           `gorm:"not null;uniqueIndex:idx_coupon_usages_triple;index" json:"order_id"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discount_amount"`
	UsedAt         time.Time       `gorm:"not null;autoCreateTime" json:"used_at"`
}
