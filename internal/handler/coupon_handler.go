package handler

import (
	"net/http"

	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /coupons の公開API
type CouponHandler struct {
	uc *usecase.CouponUsecase
}

// DI
func NewCouponHandler(uc *usecase.CouponUsecase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

func (h *CouponHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/coupons", h.list)
	e.POST("/coupons/validate", h.validate)
}

func (h *CouponHandler) list(c echo.Context) error {
	items, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

type CouponValidateRequest struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// 注文前に割引額を試算する（カウンタは消費しない）
func (h *CouponHandler) validate(c echo.Context) error {
	var req CouponValidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Preview(c.Request().Context(), usecase.CouponPreviewInput{
		Code:   req.Code,
		Amount: req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
