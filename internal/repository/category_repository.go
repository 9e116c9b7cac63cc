package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, categoryID int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (int64, error)
}
