package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表。UnitPrice 在创建时冻结为当时的生效价，之后不随商品调价变化。
type OrderItem struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID       uint           `gorm:"index;not null" json:"order_id"`                          // 订单ID
	ProductSizeID uint           `gorm:"index;not null" json:"product_size_id"`                   // 商品规格ID
	Quantity      int            `gorm:"not null" json:"quantity"`                                // 数量
	UnitPrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 单价快照
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	ProductSize *ProductSize `gorm:"foreignKey:ProductSizeID" json:"product_size,omitempty"` // 关联规格
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal 订单项小计
func (i OrderItem) Subtotal() Money {
	return i.UnitPrice.MulInt(i.Quantity)
}
