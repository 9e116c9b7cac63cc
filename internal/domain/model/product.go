package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  *int64 `gorm:"index" json:"category_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Summary     string `gorm:"type:varchar(500)" json:"summary"`
	Description string `gorm:"type:text" json:"description"`
	Cover       string `gorm:"type:varchar(500)" json:"cover"`

	//おすすめ表示するか
	Featured bool `gorm:"not null;default:false" json:"featured"`

	//どれかのSKUにquantity > 0があるか。在庫の増減のたびに再計算する。
	InStock bool `gorm:"not null;default:true" json:"in_stock"`

	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Skus     []ProductSKU   `gorm:"foreignKey:ProductID" json:"skus,omitempty"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// 商品の画像（複数、表示順つき）
type ProductImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	ImageURL  string    `gorm:"type:varchar(500);not null" json:"image_url"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
