package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`                // 主键
	StoreID         uint           `gorm:"not null;index" json:"store_id"`      // 商家ID
	StoreCategoryID *uint          `gorm:"index" json:"store_category_id"`      // 店内分区ID（可空）
	Title           string         `gorm:"not null;index" json:"title"`         // 商品标题
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`    // 唯一标识（由标题派生）
	Description     string         `gorm:"type:text" json:"description"`        // 商品描述
	Image           string         `gorm:"type:varchar(500)" json:"image"`      // 商品图片（CDN public id）
	Available       bool           `gorm:"default:true;index" json:"available"` // 是否可售
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                          // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间

	// 关联
	Store         *Store         `gorm:"foreignKey:StoreID" json:"store,omitempty"`                  // 所属商家
	StoreCategory *StoreCategory `gorm:"foreignKey:StoreCategoryID" json:"store_category,omitempty"` // 所属分区
	Sizes         []ProductSize  `gorm:"foreignKey:ProductID" json:"sizes,omitempty"`                // 规格列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// MinEffectivePrice 可售规格中的最低生效价，无可售规格时为 nil
func (p Product) MinEffectivePrice() *Money {
	var min *Money
	for _, size := range p.Sizes {
		if !size.IsAvailable {
			continue
		}
		price := size.EffectivePrice()
		if min == nil || price.LessThan(min.Decimal) {
			m := price
			min = &m
		}
	}
	return min
}
