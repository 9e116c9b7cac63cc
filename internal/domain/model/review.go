package model

import "time"

// 商品レビュー。1ユーザー1商品につき1件まで。
type ProductReview struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64 `gorm:"not null;index;uniqueIndex:idx_product_reviews_product_user" json:"product_id"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_product_reviews_product_user" json:"user_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Title   string `gorm:"type:varchar(200)" json:"title"`
	Comment string `gorm:"type:text;not null" json:"comment"`

	//購入済みユーザーのレビューかどうか（注文実績から投稿時に判定）
	IsVerifiedPurchase bool  `gorm:"not null;default:false" json:"is_verified_purchase"`
	HelpfulCount       int64 `gorm:"not null;default:0" json:"helpful_count"`

	User *User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
