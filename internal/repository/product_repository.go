package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	Featured   *bool
	Sort       string
}

type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)

	//詳細表示用（カテゴリ・画像・SKUをまとめて取る）
	FindDetail(ctx context.Context, productID int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (int64, error)
	Update(ctx context.Context, p model.Product) error
	Count(ctx context.Context) (int64, error)
}
