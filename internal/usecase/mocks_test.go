package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	products     repo.ProductRepository
	skus         repo.SKURepository
	inventory    repo.InventoryRepository
	coupons      repo.CouponRepository
	couponUsages repo.CouponUsageRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository            { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository    { return r.orderItems }
func (r *TxReposMock) Products() repo.ProductRepository        { return r.products }
func (r *TxReposMock) Skus() repo.SKURepository                { return r.skus }
func (r *TxReposMock) Inventory() repo.InventoryRepository     { return r.inventory }
func (r *TxReposMock) Coupons() repo.CouponRepository          { return r.coupons }
func (r *TxReposMock) CouponUsages() repo.CouponUsageRepository {
	return r.couponUsages
}

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) ExistsPurchasedByUser(ctx context.Context, userID int64, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.ProductReview, error) {
	args := m.Called(ctx, productID)
	reviews, _ := args.Get(0).([]model.ProductReview)
	return reviews, args.Error(1)
}

func (m *ReviewRepoMock) FindByID(ctx context.Context, reviewID int64) (model.ProductReview, error) {
	args := m.Called(ctx, reviewID)
	rv, _ := args.Get(0).(model.ProductReview)
	return rv, args.Error(1)
}

func (m *ReviewRepoMock) ExistsByProductAndUser(ctx context.Context, productID int64, userID int64) (bool, error) {
	args := m.Called(ctx, productID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepoMock) Create(ctx context.Context, rv model.ProductReview) (int64, error) {
	args := m.Called(ctx, rv)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReviewRepoMock) IncrementHelpfulCount(ctx context.Context, reviewID int64) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindDetail(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type SKURepoMock struct{ mock.Mock }

func (m *SKURepoMock) FindForProduct(ctx context.Context, productID int64, skuID int64) (model.ProductSKU, error) {
	args := m.Called(ctx, productID, skuID)
	s, _ := args.Get(0).(model.ProductSKU)
	return s, args.Error(1)
}

func (m *SKURepoMock) FindBySizeColor(ctx context.Context, productID int64, size string, color string) (model.ProductSKU, error) {
	args := m.Called(ctx, productID, size, color)
	s, _ := args.Get(0).(model.ProductSKU)
	return s, args.Error(1)
}

func (m *SKURepoMock) FindByIDForUpdate(ctx context.Context, skuID int64) (model.ProductSKU, error) {
	args := m.Called(ctx, skuID)
	s, _ := args.Get(0).(model.ProductSKU)
	return s, args.Error(1)
}

func (m *SKURepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.ProductSKU, error) {
	args := m.Called(ctx, productID)
	skus, _ := args.Get(0).([]model.ProductSKU)
	return skus, args.Error(1)
}

func (m *SKURepoMock) Create(ctx context.Context, s model.ProductSKU) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) ReserveStock(ctx context.Context, skuID int64, qty int64) (bool, error) {
	args := m.Called(ctx, skuID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) ReleaseStock(ctx context.Context, skuID int64, qty int64) error {
	args := m.Called(ctx, skuID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) SetStock(ctx context.Context, skuID int64, newQty int64) error {
	args := m.Called(ctx, skuID, newQty)
	return args.Error(0)
}

func (m *InventoryRepoMock) RefreshProductInStock(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type CouponRepoMock struct{ mock.Mock }

func (m *CouponRepoMock) FindByCode(ctx context.Context, code string) (model.Coupon, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) FindByCodeForUpdate(ctx context.Context, code string) (model.Coupon, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) FindByID(ctx context.Context, couponID int64) (model.Coupon, error) {
	args := m.Called(ctx, couponID)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) ListActive(ctx context.Context, now time.Time) ([]model.Coupon, error) {
	args := m.Called(ctx, now)
	items, _ := args.Get(0).([]model.Coupon)
	return items, args.Error(1)
}

func (m *CouponRepoMock) ListAdmin(ctx context.Context, f repo.CouponListFilter) ([]model.Coupon, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Coupon)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *CouponRepoMock) Create(ctx context.Context, c model.Coupon) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CouponRepoMock) Update(ctx context.Context, c model.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CouponRepoMock) IncrementUsedCount(ctx context.Context, couponID int64) (bool, error) {
	args := m.Called(ctx, couponID)
	return args.Bool(0), args.Error(1)
}

func (m *CouponRepoMock) DecrementUsedCount(ctx context.Context, couponID int64) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

type CouponUsageRepoMock struct{ mock.Mock }

func (m *CouponUsageRepoMock) Create(ctx context.Context, u model.CouponUsage) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *CouponUsageRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.CouponUsage, bool, error) {
	args := m.Called(ctx, orderID)
	u, _ := args.Get(0).(model.CouponUsage)
	return u, args.Bool(1), args.Error(2)
}

func (m *CouponUsageRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.AuditLog)
	return items, args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	addrs, _ := args.Get(0).([]model.Address)
	return addrs, args.Error(1)
}

func (m *AddressRepoMock) Create(ctx context.Context, a model.Address) (model.Address, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(model.Address)
	return created, args.Error(1)
}

func (m *AddressRepoMock) Update(ctx context.Context, a model.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AddressRepoMock) Delete(ctx context.Context, addressID int64) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

func (m *AddressRepoMock) IsOwnedByUser(ctx context.Context, addressID int64, userID int64) (bool, error) {
	args := m.Called(ctx, addressID, userID)
	return args.Bool(0), args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u model.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context, page int, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, limit)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepoMock) SetActive(ctx context.Context, userID int64, active bool) error {
	args := m.Called(ctx, userID, active)
	return args.Error(0)
}

func (m *UserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
