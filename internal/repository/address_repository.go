package repository

import (
	"context"

	"shop/internal/domain/model"
)

type AddressRepository interface {
	FindByID(ctx context.Context, addressID int64) (model.Address, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	Create(ctx context.Context, a model.Address) (model.Address, error)
	Update(ctx context.Context, a model.Address) error
	Delete(ctx context.Context, addressID int64) error

	//所有チェック（本人の住所かどうか）
	IsOwnedByUser(ctx context.Context, addressID int64, userID int64) (bool, error)
}
