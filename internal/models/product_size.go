package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductSize 商品规格表（价格维度）
type ProductSize struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                    // 主键
	ProductID          uint           `gorm:"not null;index" json:"product_id"`                        // 商品ID
	SizeName           string         `gorm:"type:varchar(50);not null" json:"size_name"`              // 规格名称（如 1kg / 500ml）
	SizeType           string         `gorm:"type:varchar(20);not null;default:'piece'" json:"size_type"` // 计量方式（weight/piece/volume）
	Price              Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`      // 基础价格
	PriceAfterDiscount *Money         `gorm:"type:decimal(20,2)" json:"price_after_discount"`          // 折后价（可空，不得高于基础价格）
	IsAvailable        bool           `gorm:"default:true;index" json:"is_available"`                  // 是否可售
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductSize) TableName() string {
	return "product_sizes"
}

// EffectivePrice 下单生效价：有折后价取折后价，否则取基础价
func (s ProductSize) EffectivePrice() Money {
	if s.PriceAfterDiscount != nil {
		return *s.PriceAfterDiscount
	}
	return s.Price
}

// DiscountPct 折扣百分比（四舍五入取整，无折扣为 0）
func (s ProductSize) DiscountPct() int {
	if s.PriceAfterDiscount == nil || s.Price.IsZero() {
		return 0
	}
	diff := s.Price.Sub(s.PriceAfterDiscount.Decimal)
	pct := diff.Div(s.Price.Decimal).Mul(hundred)
	return int(pct.Round(0).IntPart())
}
