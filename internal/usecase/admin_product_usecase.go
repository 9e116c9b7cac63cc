package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
)

type AdminProductUsecase struct {
	productRepo   repo.ProductRepository
	skuRepo       repo.SKURepository
	inventoryRepo repo.InventoryRepository
	categoryRepo  repo.CategoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewAdminProductUsecase(
	productRepo repo.ProductRepository,
	skuRepo repo.SKURepository,
	inventoryRepo repo.InventoryRepository,
	categoryRepo repo.CategoryRepository,
	auditRepo repo.AuditLogRepository,
) *AdminProductUsecase {
	return &AdminProductUsecase{
		productRepo:   productRepo,
		skuRepo:       skuRepo,
		inventoryRepo: inventoryRepo,
		categoryRepo:  categoryRepo,
		auditRepo:     auditRepo,
	}
}

type AdminProductInput struct {
	CategoryID  *int64 `json:"category_id"`
	Name        string `json:"name"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
	Featured    bool   `json:"featured"`
}

func (u *AdminProductUsecase) CreateProduct(ctx context.Context, actorAdminUserID int64, in AdminProductInput) (model.Product, error) {
	if actorAdminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	//カテゴリ指定があれば存在確認
	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return model.Product{}, NewHTTPError(http.StatusBadRequest, "category not found")
			}
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	p := model.Product{
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Summary:     in.Summary,
		Description: in.Description,
		Cover:       in.Cover,
		Featured:    in.Featured,
		//SKUが入るまでは在庫なし
		InStock: false,
	}

	id, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	p.ID = id
	return p, nil
}

func (u *AdminProductUsecase) UpdateProduct(ctx context.Context, actorAdminUserID int64, productID int64, in AdminProductInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Summary:     in.Summary,
		Description: in.Description,
		Cover:       in.Cover,
		Featured:    in.Featured,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type AdminSKUInput struct {
	Code             string          `json:"code"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int64           `json:"quantity"`
	SizeAttributeID  *int64          `json:"size_attribute_id"`
	ColorAttributeID *int64          `json:"color_attribute_id"`
}

func (u *AdminProductUsecase) CreateSKU(ctx context.Context, actorAdminUserID int64, productID int64, in AdminSKUInput) (model.ProductSKU, error) {
	if actorAdminUserID <= 0 {
		return model.ProductSKU{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.ProductSKU{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Code) == "" {
		return model.ProductSKU{}, NewHTTPError(http.StatusBadRequest, "code required")
	}
	if !in.Price.IsPositive() {
		return model.ProductSKU{}, NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.Quantity < 0 {
		return model.ProductSKU{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.ProductSKU{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.ProductSKU{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s := model.ProductSKU{
		ProductID:        productID,
		Code:             strings.TrimSpace(in.Code),
		Price:            in.Price,
		Quantity:         in.Quantity,
		SizeAttributeID:  in.SizeAttributeID,
		ColorAttributeID: in.ColorAttributeID,
	}

	id, err := u.skuRepo.Create(ctx, s)
	if err != nil {
		return model.ProductSKU{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	s.ID = id

	//在庫つきSKUが増えたのでin_stockを取り直す
	if err := u.inventoryRepo.RefreshProductInStock(ctx, productID); err != nil {
		return model.ProductSKU{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return s, nil
}

type AdminSetStockInput struct {
	Quantity int64 `json:"quantity"`
}

// 在庫の現在値を直接設定する（棚卸しなど）。監査ログを残す。
func (u *AdminProductUsecase) SetStock(ctx context.Context, actorAdminUserID int64, skuID int64, in AdminSetStockInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if skuID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	//変更前の値を監査ログ用に取る
	before, err := u.skuRepo.FindByIDForUpdate(ctx, skuID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.SetStock(ctx, skuID, in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.RefreshProductInStock(ctx, before.ProductID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   skuID,
		BeforeJSON:   auditJSON(map[string]any{"quantity": before.Quantity}),
		AfterJSON:    auditJSON(map[string]any{"quantity": in.Quantity}),
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func (u *AdminProductUsecase) CreateCategory(ctx context.Context, actorAdminUserID int64, name string, description string) (model.Category, error) {
	if actorAdminUserID <= 0 {
		return model.Category{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	c := model.Category{Name: strings.TrimSpace(name), Description: description}
	id, err := u.categoryRepo.Create(ctx, c)
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	c.ID = id
	return c, nil
}
