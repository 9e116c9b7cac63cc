package repository

import (
	"context"

	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	products     repo.ProductRepository
	skus         repo.SKURepository
	inventory    repo.InventoryRepository
	coupons      repo.CouponRepository
	couponUsages repo.CouponUsageRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository             { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository     { return r.orderItems }
func (r *txReposGorm) Products() repo.ProductRepository         { return r.products }
func (r *txReposGorm) Skus() repo.SKURepository                 { return r.skus }
func (r *txReposGorm) Inventory() repo.InventoryRepository      { return r.inventory }
func (r *txReposGorm) Coupons() repo.CouponRepository           { return r.coupons }
func (r *txReposGorm) CouponUsages() repo.CouponUsageRepository { return r.couponUsages }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:       NewOrderGormRepository(tx),
			orderItems:   NewOrderItemGormRepository(tx),
			products:     NewProductGormRepository(tx),
			skus:         NewSKUGormRepository(tx),
			inventory:    NewInventoryGormRepository(tx),
			coupons:      NewCouponGormRepository(tx),
			couponUsages: NewCouponUsageGormRepository(tx),
		}
		return fn(r)
	})
}
