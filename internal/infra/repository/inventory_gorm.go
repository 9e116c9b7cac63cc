package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす。アプリ側のread-modify-writeはしない。
func (r *InventoryGormRepository) ReserveStock(ctx context.Context, skuID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ProductSKU{}).
		Where("id = ? AND quantity >= ?", skuID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（キャンセル）。予約済み分を返すだけなので上限チェックは不要。
func (r *InventoryGormRepository) ReleaseStock(ctx context.Context, skuID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.ProductSKU{}).
		Where("id = ?", skuID).
		Update("quantity", gorm.Expr("quantity + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫の現在値を設定（管理者操作）
func (r *InventoryGormRepository) SetStock(ctx context.Context, skuID int64, newQty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.ProductSKU{}).
		Where("id = ?", skuID).
		Update("quantity", newQty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// in_stock = quantity>0 のSKUが1つでもあるか、をDB側で再計算する
func (r *InventoryGormRepository) RefreshProductInStock(ctx context.Context, productID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("in_stock", gorm.Expr(
			"EXISTS (SELECT 1 FROM product_skus WHERE product_skus.product_id = products.id AND product_skus.quantity > 0)",
		))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
