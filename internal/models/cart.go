package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart 购物车表（每个用户最多一个，结算后删除）
type Cart struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"` // 主键（UUID）
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`   // 用户ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                            // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// BeforeCreate 创建前补齐 UUID 主键
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
