package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商圈分类表（按业态划分商家，如超市/药店/餐饮）
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"` // 分类名称
	Image     string         `gorm:"type:varchar(500)" json:"image"`   // 分类图片（CDN public id）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间

	Stores []Store `gorm:"foreignKey:CategoryID" json:"stores,omitempty"` // 分类下商家
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
