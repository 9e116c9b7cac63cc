package main

import (
	"log"

	"shop/internal/config"
	"shop/internal/domain/model"
	"shop/internal/handler"
	"shop/internal/infra/db"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/server"
	"shop/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envはローカル用。本番は環境変数だけで動く。
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductAttribute{},
		&model.ProductSKU{},
		&model.Order{},
		&model.OrderItem{},
		&model.ProductReview{},
		&model.Coupon{},
		&model.CouponUsage{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	skuRepo := infraRepo.NewSKUGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	reviewRepo := infraRepo.NewProductReviewGormRepository(gormDB)
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	productUC := usecase.NewProductUsecase(productRepo, skuRepo, categoryRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo, orderItemRepo)
	couponUC := usecase.NewCouponUsecase(couponRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	orderUC := usecase.NewOrderUsecase(txManager, addressRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	adminProductUC := usecase.NewAdminProductUsecase(productRepo, skuRepo, inventoryRepo, categoryRepo, auditRepo)
	adminCouponUC := usecase.NewAdminCouponUsecase(couponRepo, auditRepo)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, productRepo, orderRepo)

	//Handler生成
	handlers := server.Handlers{
		Health:       handler.NewHealthHandler(gormDB),
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Review:       handler.NewReviewHandler(reviewUC),
		Coupon:       handler.NewCouponHandler(couponUC),
		Address:      handler.NewAddressHandler(addressUC),
		Order:        handler.NewOrderHandler(orderUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminProduct: handler.NewAdminProductHandler(adminProductUC),
		AdminCoupon:  handler.NewAdminCouponHandler(adminCouponUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC),
	}

	e := server.New(cfg, handlers)
	if err := server.Start(e, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}
