package repository

import "context"

// 在庫の増減は必ず単発の条件付きUPDATEで行う（read-modify-writeは不可）。
type InventoryRepository interface {
	//在庫が足りるときだけ減算。減らせなければfalse。
	ReserveStock(ctx context.Context, skuID int64, qty int64) (bool, error)

	//在庫戻し（キャンセルなど）
	ReleaseStock(ctx context.Context, skuID int64, qty int64) error

	//在庫の現在値を設定（管理者操作）
	SetStock(ctx context.Context, skuID int64, newQty int64) error

	//商品のin_stockフラグをSKU在庫から再計算して保存する
	RefreshProductInStock(ctx context.Context, productID int64) error
}
