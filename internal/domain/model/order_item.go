package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。Priceは注文時点のSKU価格スナップショットで以後不変。
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	SKUID     int64           `gorm:"column:sku_id;not null;index" json:"sku_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	ProductNameSnapshot string `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	SKUCodeSnapshot     string `gorm:"column:sku_code_snapshot;type:varchar(100);not null" json:"sku_code_snapshot"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
