package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type AttributeType string

const (
	AttributeTypeSize  AttributeType = "size"
	AttributeTypeColor AttributeType = "color"
)

// サイズ・色などのバリエーション属性
type ProductAttribute struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      AttributeType `gorm:"type:varchar(20);not null;index" json:"type"`
	Value     string        `gorm:"type:varchar(100);not null" json:"value"`
	CreatedAt time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 購入単位。quantityは常に0以上（減算は条件付きUPDATEのみ）。
type ProductSKU struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	SizeAttributeID  *int64 `gorm:"index" json:"size_attribute_id"`
	ColorAttributeID *int64 `gorm:"index" json:"color_attribute_id"`

	Code     string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"code"`
	Price    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity int64           `gorm:"not null;default:0" json:"quantity"`

	SizeAttribute  *ProductAttribute `gorm:"foreignKey:SizeAttributeID" json:"size_attribute,omitempty"`
	ColorAttribute *ProductAttribute `gorm:"foreignKey:ColorAttributeID" json:"color_attribute,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
