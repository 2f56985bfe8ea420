package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	CustomerID uint           `gorm:"index;not null" json:"customer_id"`                        // 下单用户ID
	Status     string         `gorm:"index;not null;default:'pending'" json:"status"`           // 订单状态
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 订单总价（由订单项派生）
	Notes      string         `gorm:"type:text" json:"notes"`                                   // 备注
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // 下单时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	// 关联
	Customer *User       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 下单用户
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`       // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
