package repository

import (
	"context"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CouponGormRepository struct {
	db *gorm.DB
}

func NewCouponGormRepository(db *gorm.DB) *CouponGormRepository {
	return &CouponGormRepository{db: db}
}

func (r *CouponGormRepository) FindByCode(ctx context.Context, code string) (model.Coupon, error) {
	var c model.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error
	if isNotFound(err) {
		return model.Coupon{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Coupon{}, err
	}
	return c, nil
}

// 利用カウンタを触るトランザクションではこちらでロックして取る
func (r *CouponGormRepository) FindByCodeForUpdate(ctx context.Context, code string) (model.Coupon, error) {
	var c model.Coupon
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&c).Error
	if isNotFound(err) {
		return model.Coupon{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Coupon{}, err
	}
	return c, nil
}

func (r *CouponGormRepository) FindByID(ctx context.Context, couponID int64) (model.Coupon, error) {
	var c model.Coupon
	err := r.db.WithContext(ctx).Where("id = ?", couponID).First(&c).Error
	if isNotFound(err) {
		return model.Coupon{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Coupon{}, err
	}
	return c, nil
}

// 公開一覧は有効期間内かつactiveのみ
func (r *CouponGormRepository) ListActive(ctx context.Context, now time.Time) ([]model.Coupon, error) {
	var items []model.Coupon
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
		Order("discount_value desc").
		Find(&items).Error
	if err != nil {
		return []model.Coupon{}, err
	}
	return items, nil
}

func (r *CouponGormRepository) ListAdmin(ctx context.Context, f repo.CouponListFilter) ([]model.Coupon, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Coupon{}).Count(&total).Error; err != nil {
		return []model.Coupon{}, 0, err
	}

	var items []model.Coupon
	offset := (f.Page - 1) * f.Limit
	err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(f.Limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Coupon{}, 0, err
	}

	return items, total, nil
}

func (r *CouponGormRepository) Create(ctx context.Context, c model.Coupon) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *CouponGormRepository) Update(ctx context.Context, c model.Coupon) error {
	res := r.db.WithContext(ctx).Save(&c)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// used_countを上限以下のときだけ+1する。0件更新なら上限に負けた（同時実行含む）。
func (r *CouponGormRepository) IncrementUsedCount(ctx context.Context, couponID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Coupon{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", couponID).
		Update("used_count", gorm.Expr("used_count + 1"))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

func (r *CouponGormRepository) DecrementUsedCount(ctx context.Context, couponID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Coupon{}).
		Where("id = ? AND used_count > 0", couponID).
		Update("used_count", gorm.Expr("used_count - 1"))

	if res.Error != nil {
		return res.Error
	}
	return nil
}

type CouponUsageGormRepository struct {
	db *gorm.DB
}

func NewCouponUsageGormRepository(db *gorm.DB) *CouponUsageGormRepository {
	return &CouponUsageGormRepository{db: db}
}

func (r *CouponUsageGormRepository) Create(ctx context.Context, u model.CouponUsage) error {
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return err
	}
	return nil
}

func (r *CouponUsageGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.CouponUsage, bool, error) {
	var u model.CouponUsage
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&u).Error
	if isNotFound(err) {
		return model.CouponUsage{}, false, nil
	}
	if err != nil {
		return model.CouponUsage{}, false, err
	}
	return u, true, nil
}

func (r *CouponUsageGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.CouponUsage{}).Error
}
