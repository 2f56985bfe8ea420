package models

import (
	"time"

	"gorm.io/gorm"
)

// Store 商家表
type Store struct {
	ID          uint           `gorm:"primarykey" json:"id"`              // 主键
	CategoryID  uint           `gorm:"not null;index" json:"category_id"` // 商圈分类ID
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`  // 商家名称
	Address     string         `gorm:"type:varchar(500)" json:"address"`  // 商家地址
	Description string         `gorm:"type:text" json:"description"`      // 商家简介
	OpensAt     string         `gorm:"type:varchar(5)" json:"opens_at"`   // 营业开始时间（HH:MM）
	CloseAt     string         `gorm:"type:varchar(5)" json:"close_at"`   // 营业结束时间（HH:MM）
	Image       string         `gorm:"type:varchar(500)" json:"image"`    // 商家图片（CDN public id）
	MaxDiscount float64        `gorm:"type:decimal(4,1);not null;default:0" json:"max_discount"` // 最大折扣（0-100，保留 1 位小数）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                        // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间

	// 关联
	Category        Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`         // 商圈分类
	StoreCategories []StoreCategory `gorm:"foreignKey:StoreID" json:"store_categories,omitempty"`    // 店内分区
	Products        []Product       `gorm:"foreignKey:StoreID" json:"products,omitempty"`            // 商品
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
