package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Number string `gorm:"type:varchar(36);not null;uniqueIndex" json:"number"`
	UserID int64  `gorm:"not null;index" json:"user_id"`

	//住所は任意（退会等で消えてもよいようnullable）
	AddressID *int64 `gorm:"index" json:"address_id"`

	Total  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	Status OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
