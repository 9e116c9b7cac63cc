package repository

import (
	"context"
	"time"

	"shop/internal/domain/model"
)

type CouponListFilter struct {
	Page  int
	Limit int
}

type CouponRepository interface {
	//codeは正規化済み（trim+upper）で渡す
	FindByCode(ctx context.Context, code string) (model.Coupon, error)

	//クーポン行をFOR UPDATEでロックして取得。同時利用をカウンタ上で直列化する。
	FindByCodeForUpdate(ctx context.Context, code string) (model.Coupon, error)

	FindByID(ctx context.Context, couponID int64) (model.Coupon, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Coupon, error)
	ListAdmin(ctx context.Context, f CouponListFilter) ([]model.Coupon, int64, error)
	Create(ctx context.Context, c model.Coupon) (int64, error)
	Update(ctx context.Context, c model.Coupon) error

	//used_countを上限チェック付きで+1。上限到達で増やせなければfalse。
	IncrementUsedCount(ctx context.Context, couponID int64) (bool, error)

	//キャンセル時の巻き戻し
	DecrementUsedCount(ctx context.Context, couponID int64) error
}

type CouponUsageRepository interface {
	Create(ctx context.Context, u model.CouponUsage) error
	FindByOrderID(ctx context.Context, orderID int64) (model.CouponUsage, bool, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
