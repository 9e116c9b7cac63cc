package server

import (
	"shop/internal/config"
	"shop/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// すべてのHandlerをまとめてDIする
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Review       *handler.ReviewHandler
	Coupon       *handler.CouponHandler
	Address      *handler.AddressHandler
	Order        *handler.OrderHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminProduct *handler.AdminProductHandler
	AdminCoupon  *handler.AdminCouponHandler
	AdminUser    *handler.AdminUserHandler
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())

	RegisterRoutes(e, cfg, h)

	return e
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e)
	h.Review.RegisterRoutes(e, cfg)
	h.Coupon.RegisterRoutes(e)
	h.Address.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminCoupon.RegisterRoutes(e, cfg)
	h.AdminUser.RegisterRoutes(e, cfg)
}

func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
