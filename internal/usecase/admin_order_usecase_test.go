package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// List tests
// =====================

func TestAdminOrderUsecase_List_InvalidPage(t *testing.T) {
	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	outs, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 20})
	assert.Equal(t, 0, len(outs))
	assertErrContains(t, err, "invalid page")
}

func TestAdminOrderUsecase_List_InvalidLimit(t *testing.T) {
	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	outs, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 0})
	assert.Equal(t, 0, len(outs))
	assertErrContains(t, err, "invalid limit")
}

func TestAdminOrderUsecase_List_Success_CallsItemsPerOrder(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: orders, orderItems: items}
	tx.On("WithinTx", mock.Anything).Return(nil)

	f := repo.AdminOrderListFilter{Page: 1, Limit: 20}

	list := []model.Order{
		{ID: 10, Status: model.OrderStatusPending},
		{ID: 11, Status: model.OrderStatusProcessing},
	}

	orders.On("ListAdmin", mock.Anything, f).Return(list, int64(2), nil)
	items.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)
	items.On("ListByOrderID", mock.Anything, int64(11)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	outs, err := uc.List(ctx, f)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(outs))

	tx.AssertExpectations(t)
	orders.AssertExpectations(t)
	items.AssertExpectations(t)
}

// =====================
// UpdateStatus tests
// =====================

func TestAdminOrderUsecase_UpdateStatus_UnauthorizedActor(t *testing.T) {
	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminOrderUsecase(tx, audit)

	err := uc.UpdateStatus(context.Background(), 0, 1, usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, "unauthorized")
}

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminOrderUsecase(tx, audit)

	err := uc.UpdateStatus(context.Background(), 1, 1, usecase.AdminUpdateOrderStatusInput{Status: "xxx"})
	assertErrContains(t, err, "invalid status")
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)

	orders := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: orders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders.On("FindByIDForUpdate", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	err := uc.UpdateStatus(ctx, 1, 99, usecase.AdminUpdateOrderStatusInput{Status: "processing"})
	assertErrContains(t, err, "not found")

	orders.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_SameStatus_NoOp(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)

	orders := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: orders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusProcessing,
	}, nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	err := uc.UpdateStatus(ctx, 1, 1, usecase.AdminUpdateOrderStatusInput{Status: "processing"})
	assert.NoError(t, err)

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// deliveredは終端
func TestAdminOrderUsecase_UpdateStatus_DeliveredIsTerminal(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)

	orders := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: orders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusDelivered,
	}, nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	err := uc.UpdateStatus(ctx, 1, 1, usecase.AdminUpdateOrderStatusInput{Status: "pending"})
	assertErrContains(t, err, "cannot change delivered order to pending")
}

// pending→shippedは飛ばせない（processingを経由する）
func TestAdminOrderUsecase_UpdateStatus_PendingToShipped_Rejected(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)

	orders := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: orders}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusPending,
	}, nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	err := uc.UpdateStatus(ctx, 1, 1, usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, "cannot change pending order to shipped")
}

// processing→cancelled: 在庫戻し＋クーポン巻き戻し＋audit
func TestAdminOrderUsecase_UpdateStatus_Cancel_RestoresStock_And_Audits(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	skus := new(SKURepoMock)
	inv := new(InventoryRepoMock)
	coupons := new(CouponRepoMock)
	usages := new(CouponUsageRepoMock)

	tx.Repos = &TxReposMock{
		orders:       orders,
		orderItems:   items,
		skus:         skus,
		inventory:    inv,
		coupons:      coupons,
		couponUsages: usages,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	adminID := int64(999)
	orderID := int64(50)

	orders.On("FindByIDForUpdate", mock.Anything, orderID).Return(model.Order{
		ID:     orderID,
		Status: model.OrderStatusProcessing,
	}, nil)

	orderItems := []model.OrderItem{
		{OrderID: orderID, ProductID: 100, SKUID: 7, Quantity: 2},
		{OrderID: orderID, ProductID: 101, SKUID: 8, Quantity: 1},
	}
	items.On("ListByOrderID", mock.Anything, orderID).Return(orderItems, nil)

	skus.On("FindByIDForUpdate", mock.Anything, int64(7)).Return(model.ProductSKU{ID: 7}, nil)
	skus.On("FindByIDForUpdate", mock.Anything, int64(8)).Return(model.ProductSKU{ID: 8}, nil)
	inv.On("ReleaseStock", mock.Anything, int64(7), int64(2)).Return(nil)
	inv.On("ReleaseStock", mock.Anything, int64(8), int64(1)).Return(nil)
	inv.On("RefreshProductInStock", mock.Anything, int64(100)).Return(nil)
	inv.On("RefreshProductInStock", mock.Anything, int64(101)).Return(nil)

	usages.On("FindByOrderID", mock.Anything, orderID).Return(model.CouponUsage{}, false, nil)

	orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusCancelled).Return(nil)

	audit.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		// CreatedAt は now なので見ない
		return a.ActorUserID == adminID &&
			a.Action == model.AuditActionUpdateOrderStatus &&
			a.ResourceType == model.AuditResourceOrder &&
			a.ResourceID == orderID &&
			a.BeforeJSON == `{"status":"processing"}` &&
			a.AfterJSON == `{"status":"cancelled"}`
	})).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	err := uc.UpdateStatus(ctx, adminID, orderID, usecase.AdminUpdateOrderStatusInput{Status: "cancelled"})
	assert.NoError(t, err)

	orders.AssertExpectations(t)
	items.AssertExpectations(t)
	inv.AssertExpectations(t)
	audit.AssertExpectations(t)
}

// cancelled→processing: 在庫を取り直す
func TestAdminOrderUsecase_UpdateStatus_Uncancel_ReservesStock(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	skus := new(SKURepoMock)
	inv := new(InventoryRepoMock)

	tx.Repos = &TxReposMock{
		orders:     orders,
		orderItems: items,
		skus:       skus,
		inventory:  inv,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orderID := int64(60)

	orders.On("FindByIDForUpdate", mock.Anything, orderID).Return(model.Order{
		ID:     orderID,
		Status: model.OrderStatusCancelled,
	}, nil)

	orderItems := []model.OrderItem{
		{OrderID: orderID, ProductID: 100, SKUID: 7, Quantity: 2, ProductNameSnapshot: "Tee"},
	}
	items.On("ListByOrderID", mock.Anything, orderID).Return(orderItems, nil)

	skus.On("FindByIDForUpdate", mock.Anything, int64(7)).Return(model.ProductSKU{ID: 7}, nil)
	inv.On("ReserveStock", mock.Anything, int64(7), int64(2)).Return(true, nil)
	inv.On("RefreshProductInStock", mock.Anything, int64(100)).Return(nil)

	orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusProcessing).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	err := uc.UpdateStatus(ctx, 1, orderID, usecase.AdminUpdateOrderStatusInput{Status: "processing"})
	assert.NoError(t, err)

	inv.AssertExpectations(t)
	orders.AssertExpectations(t)
}

// キャンセル解除時に在庫が足りなければ409でTxごと失敗
func TestAdminOrderUsecase_UpdateStatus_Uncancel_InsufficientStock_Conflict(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	audit := new(AuditRepoMock)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	skus := new(SKURepoMock)
	inv := new(InventoryRepoMock)

	tx.Repos = &TxReposMock{
		orders:     orders,
		orderItems: items,
		skus:       skus,
		inventory:  inv,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orderID := int64(60)

	orders.On("FindByIDForUpdate", mock.Anything, orderID).Return(model.Order{
		ID:     orderID,
		Status: model.OrderStatusCancelled,
	}, nil)

	orderItems := []model.OrderItem{
		{OrderID: orderID, ProductID: 100, SKUID: 7, Quantity: 2, ProductNameSnapshot: "Tee"},
	}
	items.On("ListByOrderID", mock.Anything, orderID).Return(orderItems, nil)

	skus.On("FindByIDForUpdate", mock.Anything, int64(7)).Return(model.ProductSKU{ID: 7}, nil)
	inv.On("ReserveStock", mock.Anything, int64(7), int64(2)).Return(false, nil)

	uc := usecase.NewAdminOrderUsecase(tx, audit)

	err := uc.UpdateStatus(ctx, 1, orderID, usecase.AdminUpdateOrderStatusInput{Status: "processing"})
	assertErrContains(t, err, "cannot restore stock for Tee")

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
