package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	addresses repo.AddressRepository
}

func NewOrderUsecase(tx repo.TransactionManager, addresses repo.AddressRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, addresses: addresses}
}

// 1明細のリクエスト。sku_id指定か、size+color指定のどちらか。
type OrderItemInput struct {
	ProductID int64  `json:"product_id"`
	SKUID     *int64 `json:"sku_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int64  `json:"quantity"`
}

type CreateOrderInput struct {
	AddressID  *int64
	Items      []OrderItemInput
	CouponCode string
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	SKUID     int64           `json:"sku_id"`
	Name      string          `json:"name"`
	SKUCode   string          `json:"sku_code"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	Number    string            `json:"number"`
	UserID    int64             `json:"user_id"`
	AddressID *int64            `json:"address_id"`
	Status    string            `json:"status"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Items     []OrderItemOutput `json:"items"`
}

// 解決済み明細（商品＋SKU＋数量）
type resolvedOrderItem struct {
	product model.Product
	sku     model.ProductSKU
	qty     int64
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "items required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if it.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		if it.SKUID == nil && (strings.TrimSpace(it.Size) == "" || strings.TrimSpace(it.Color) == "") {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "either sku_id or size+color must be provided")
		}
	}

	//address_idの存在確認＋所有チェック（他人の住所は「存在しない扱い」）
	if in.AddressID != nil {
		addr, err := u.addresses.FindByID(ctx, *in.AddressID)
		if errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "address not found")
		}
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if addr.UserID != userID {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "address not found")
		}
	}

	couponCode := strings.ToUpper(strings.TrimSpace(in.CouponCode))

	var out OrderOutput

	//注文確定は全部で1トランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		resolved, err := resolveOrderItems(ctx, r, in.Items)
		if err != nil {
			return err
		}

		//SKUロックは常にID昇順で取る。複数商品注文同士のデッドロック回避。
		sort.Slice(resolved, func(i, j int) bool { return resolved[i].sku.ID < resolved[j].sku.ID })

		subtotal := decimal.Zero
		for i := range resolved {
			//行ロックを取ってから条件付きUPDATEで確定減算
			if _, err := r.Skus().FindByIDForUpdate(ctx, resolved[i].sku.ID); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("sku not found: %d", resolved[i].sku.ID))
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			ok, err := r.Inventory().ReserveStock(ctx, resolved[i].sku.ID, resolved[i].qty)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("insufficient stock for %s", resolved[i].product.Name))
			}

			subtotal = subtotal.Add(resolved[i].sku.Price.Mul(decimal.NewFromInt(resolved[i].qty)))
		}

		//クーポンは行ロック→検証→割引計算。計算に副作用はない。
		var coupon *model.Coupon
		discount := decimal.Zero
		if couponCode != "" {
			c, err := r.Coupons().FindByCodeForUpdate(ctx, couponCode)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "invalid coupon code")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := c.Validate(time.Now(), subtotal); err != nil {
				return NewHTTPError(http.StatusBadRequest, err.Error())
			}
			discount = c.CalculateDiscount(subtotal)
			coupon = &c
		}

		total := subtotal.Sub(discount)
		if total.IsNegative() {
			total = decimal.Zero
		}
		total = total.Round(2)

		now := time.Now()
		number := uuid.NewString()
		orderID, err := r.Orders().Create(ctx, model.Order{
			Number:    number,
			UserID:    userID,
			AddressID: in.AddressID,
			Total:     total,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細はロック時点の価格スナップショットで保存
		items := make([]model.OrderItem, 0, len(resolved))
		for _, ri := range resolved {
			items = append(items, model.OrderItem{
				OrderID:             orderID,
				ProductID:           ri.product.ID,
				SKUID:               ri.sku.ID,
				Quantity:            ri.qty,
				Price:               ri.sku.Price,
				ProductNameSnapshot: ri.product.Name,
				SKUCodeSnapshot:     ri.sku.Code,
				CreatedAt:           now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//利用記録＋条件付き+1。0件更新なら同時実行の相手が最後の1回を取っている。
		if coupon != nil && discount.IsPositive() {
			ok, err := r.Coupons().IncrementUsedCount(ctx, coupon.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, "coupon usage limit reached")
			}
			if err := r.CouponUsages().Create(ctx, model.CouponUsage{
				CouponID:       coupon.ID,
				UserID:         userID,
				OrderID:        orderID,
				DiscountAmount: discount,
				UsedAt:         now,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := refreshInStockFlags(ctx, r, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:        orderID,
			Number:    number,
			UserID:    userID,
			AddressID: in.AddressID,
			Total:     total,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		out = toOrderOutput(created, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelOrder はユーザー自身の注文を取り消す。在庫・クーポンも同じTxで巻き戻す。
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		switch o.Status {
		case model.OrderStatusPending, model.OrderStatusProcessing:
			// OK
		case model.OrderStatusCancelled:
			return NewHTTPError(http.StatusBadRequest, "order already cancelled")
		default:
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cannot cancel %s order", o.Status))
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := releaseOrderInventory(ctx, r, items); err != nil {
			return err
		}
		if err := revertCouponUsage(ctx, r, orderID); err != nil {
			return err
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまずは固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// resolveOrderItems はリクエスト明細を商品＋SKU＋単価に解決する。
// ここでの在庫チェックは先行チェックで、確定はロック後のReserveStock。
func resolveOrderItems(ctx context.Context, r repo.TxRepos, inputs []OrderItemInput) ([]resolvedOrderItem, error) {
	resolved := make([]resolvedOrderItem, 0, len(inputs))

	for _, it := range inputs {
		p, err := r.Products().FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("product not found: %d", it.ProductID))
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		var sku model.ProductSKU
		if it.SKUID != nil {
			sku, err = r.Skus().FindForProduct(ctx, p.ID, *it.SKUID)
			if errors.Is(err, repo.ErrNotFound) {
				return nil, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("sku not found: %d", *it.SKUID))
			}
		} else {
			size := strings.TrimSpace(it.Size)
			color := strings.TrimSpace(it.Color)
			sku, err = r.Skus().FindBySizeColor(ctx, p.ID, size, color)
			if errors.Is(err, repo.ErrNotFound) {
				return nil, NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("sku not found for %s - size: %s, color: %s", p.Name, size, color))
			}
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if sku.Quantity < it.Quantity {
			return nil, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("insufficient stock for %s", p.Name))
		}

		resolved = append(resolved, resolvedOrderItem{product: p, sku: sku, qty: it.Quantity})
	}

	return resolved, nil
}

// releaseOrderInventory は注文明細分の在庫を戻す。SKUロックはID昇順。
func releaseOrderInventory(ctx context.Context, r repo.TxRepos, items []model.OrderItem) error {
	sorted := sortItemsBySKUID(items)
	for _, it := range sorted {
		if _, err := r.Skus().FindByIDForUpdate(ctx, it.SKUID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Inventory().ReleaseStock(ctx, it.SKUID, it.Quantity); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return refreshInStockFlags(ctx, r, items)
}

// reserveOrderInventory はキャンセル解除時の再予約。再予約なので足りなければ失敗する。
func reserveOrderInventory(ctx context.Context, r repo.TxRepos, items []model.OrderItem) error {
	sorted := sortItemsBySKUID(items)
	for _, it := range sorted {
		if _, err := r.Skus().FindByIDForUpdate(ctx, it.SKUID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		ok, err := r.Inventory().ReserveStock(ctx, it.SKUID, it.Quantity)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			//管理者向けに通常のvalidationエラーと区別できるメッセージで返す
			return NewHTTPError(http.StatusConflict, fmt.Sprintf("cannot restore stock for %s", it.ProductNameSnapshot))
		}
	}
	return refreshInStockFlags(ctx, r, items)
}

// revertCouponUsage は注文に紐づくクーポン利用を巻き戻す。利用記録がなければ何もしない。
func revertCouponUsage(ctx context.Context, r repo.TxRepos, orderID int64) error {
	usage, found, err := r.CouponUsages().FindByOrderID(ctx, orderID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !found {
		return nil
	}
	if err := r.Coupons().DecrementUsedCount(ctx, usage.CouponID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.CouponUsages().DeleteByOrderID(ctx, orderID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func refreshInStockFlags(ctx context.Context, r repo.TxRepos, items []model.OrderItem) error {
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		if err := r.Inventory().RefreshProductInStock(ctx, it.ProductID); err != nil {
			return err
		}
	}
	return nil
}

func sortItemsBySKUID(items []model.OrderItem) []model.OrderItem {
	sorted := make([]model.OrderItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SKUID < sorted[j].SKUID })
	return sorted
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			SKUID:     it.SKUID,
			Name:      it.ProductNameSnapshot,
			SKUCode:   it.SKUCodeSnapshot,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		Number:    o.Number,
		UserID:    o.UserID,
		AddressID: o.AddressID,
		Status:    string(o.Status),
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Items:     outItems,
	}
}
