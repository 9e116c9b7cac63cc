package usecase

import (
	"context"
	"errors"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type AdminUserUsecase struct {
	userRepo    repo.UserRepository
	productRepo repo.ProductRepository
	orderRepo   repo.OrderRepository
}

// DI
func NewAdminUserUsecase(
	userRepo repo.UserRepository,
	productRepo repo.ProductRepository,
	orderRepo repo.OrderRepository,
) *AdminUserUsecase {
	return &AdminUserUsecase{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

type UserListOutput struct {
	Users []UserDTO `json:"users"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

func (u *AdminUserUsecase) List(ctx context.Context, page int, limit int) (UserListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := u.userRepo.List(ctx, page, limit)
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := UserListOutput{
		Users: make([]UserDTO, 0, len(users)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, user := range users {
		out.Users = append(out.Users, toUserDTO(user))
	}
	return out, nil
}

// ユーザーの有効/停止を切り替える。自分自身は停止できない。
func (u *AdminUserUsecase) SetActive(ctx context.Context, actorAdminUserID int64, targetUserID int64, active bool) error {
	if targetUserID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if targetUserID == actorAdminUserID && !active {
		return NewHTTPError(http.StatusBadRequest, "cannot disable yourself")
	}

	if _, err := u.userRepo.FindByID(ctx, targetUserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.userRepo.SetActive(ctx, targetUserID, active); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type DashboardOutput struct {
	ProductCount      int64 `json:"product_count"`
	OrderCount        int64 `json:"order_count"`
	PendingOrderCount int64 `json:"pending_order_count"`
	UserCount         int64 `json:"user_count"`
}

// 管理画面トップ用の集計
func (u *AdminUserUsecase) Dashboard(ctx context.Context) (DashboardOutput, error) {
	products, err := u.productRepo.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	orders, err := u.orderRepo.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	pending, err := u.orderRepo.CountByStatus(ctx, model.OrderStatusPending)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	users, err := u.userRepo.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardOutput{
		ProductCount:      products,
		OrderCount:        orders,
		PendingOrderCount: pending,
		UserCount:         users,
	}, nil
}
