package models

import (
	"time"

	"gorm.io/gorm"
)

// StoreCategory 店内分区表（同一商家内名称唯一）
type StoreCategory struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                        // 主键
	StoreID   uint           `gorm:"not null;uniqueIndex:idx_store_category_name" json:"store_id"` // 商家ID
	Name      string         `gorm:"not null;uniqueIndex:idx_store_category_name" json:"name"`    // 分区名称
	Image     string         `gorm:"type:varchar(500)" json:"image"`                              // 分区图片（CDN public id）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Store    *Store    `gorm:"foreignKey:StoreID" json:"store,omitempty"`           // 所属商家
	Products []Product `gorm:"foreignKey:StoreCategoryID" json:"products,omitempty"` // 分区内商品
}

// TableName 指定表名
func (StoreCategory) TableName() string {
	return "store_categories"
}
