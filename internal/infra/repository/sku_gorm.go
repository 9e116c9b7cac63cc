package repository

import (
	"context"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SKUGormRepository struct {
	db *gorm.DB
}

func NewSKUGormRepository(db *gorm.DB) *SKUGormRepository {
	return &SKUGormRepository{db: db}
}

func (r *SKUGormRepository) FindForProduct(ctx context.Context, productID int64, skuID int64) (model.ProductSKU, error) {
	var s model.ProductSKU
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", skuID, productID).
		First(&s).Error
	if isNotFound(err) {
		return model.ProductSKU{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductSKU{}, err
	}
	return s, nil
}

// サイズ・色の属性値からSKUを1つに解決する
func (r *SKUGormRepository) FindBySizeColor(ctx context.Context, productID int64, size string, color string) (model.ProductSKU, error) {
	var s model.ProductSKU
	err := r.db.WithContext(ctx).
		Joins("JOIN product_attributes sa ON sa.id = product_skus.size_attribute_id AND sa.type = ? AND sa.value = ?", model.AttributeTypeSize, size).
		Joins("JOIN product_attributes ca ON ca.id = product_skus.color_attribute_id AND ca.type = ? AND ca.value = ?", model.AttributeTypeColor, color).
		Where("product_skus.product_id = ?", productID).
		First(&s).Error
	if isNotFound(err) {
		return model.ProductSKU{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductSKU{}, err
	}
	return s, nil
}

// FOR UPDATEで行ロックを取って取得。トランザクション内でのみ呼ぶこと。
func (r *SKUGormRepository) FindByIDForUpdate(ctx context.Context, skuID int64) (model.ProductSKU, error) {
	var s model.ProductSKU
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", skuID).
		First(&s).Error
	if isNotFound(err) {
		return model.ProductSKU{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductSKU{}, err
	}
	return s, nil
}

func (r *SKUGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.ProductSKU, error) {
	var items []model.ProductSKU
	err := r.db.WithContext(ctx).
		Preload("SizeAttribute").
		Preload("ColorAttribute").
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.ProductSKU{}, err
	}
	return items, nil
}

func (r *SKUGormRepository) Create(ctx context.Context, s model.ProductSKU) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return 0, err
	}
	return s.ID, nil
}
