package repository

import (
	"context"

	"shop/internal/domain/model"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, userID int64) (model.User, error)
	Create(ctx context.Context, u model.User) (int64, error)
	List(ctx context.Context, page int, limit int) ([]model.User, int64, error)
	SetActive(ctx context.Context, userID int64, active bool) error
	Count(ctx context.Context) (int64, error)
}
