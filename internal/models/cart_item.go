package models

import (
	"time"
)

// CartItem 购物车项（同一购物车内同一规格唯一，重复加购只加数量）
type CartItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                                       // 主键
	CartID        string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_item_size" json:"cart_id"`    // 购物车ID
	ProductSizeID uint      `gorm:"not null;uniqueIndex:idx_cart_item_size" json:"product_size_id"`             // 商品规格ID
	Quantity      int       `gorm:"not null" json:"quantity"`                                                   // 数量
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                                    // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                                                 // 更新时间

	ProductSize *ProductSize `gorm:"foreignKey:ProductSizeID" json:"product_size,omitempty"` // 关联规格
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
