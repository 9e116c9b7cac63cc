package repository

import (
	"context"

	"shop/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	//レビューの購入済みバッジ用。キャンセル済み・未確定(pending)の注文は数えない。
	ExistsPurchasedByUser(ctx context.Context, userID int64, productID int64) (bool, error)
}
