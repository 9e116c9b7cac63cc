package repository

import (
	"context"

	"shop/internal/domain/model"
)

type SKURepository interface {
	//商品に紐づくSKUをIDで取得
	FindForProduct(ctx context.Context, productID int64, skuID int64) (model.ProductSKU, error)

	//サイズ・色の属性値でSKUを解決する
	FindBySizeColor(ctx context.Context, productID int64, size string, color string) (model.ProductSKU, error)

	//SKU行をFOR UPDATEでロックして取得。在庫を動かすトランザクションで使う。
	FindByIDForUpdate(ctx context.Context, skuID int64) (model.ProductSKU, error)

	ListByProductID(ctx context.Context, productID int64) ([]model.ProductSKU, error)
	Create(ctx context.Context, s model.ProductSKU) (int64, error)
}
