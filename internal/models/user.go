package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（以手机号为登录账号）
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`              // 主键
	Phone        string         `gorm:"uniqueIndex;not null" json:"phone"` // 手机号（登录账号）
	FullName     string         `gorm:"not null" json:"full_name"`         // 姓名
	Email        string         `gorm:"index" json:"email"`                // 邮箱（订单通知用，可空）
	Address      string         `gorm:"type:varchar(500)" json:"address"`  // 收货地址
	NearMark     string         `gorm:"type:varchar(200)" json:"near_mark"` // 地址附近标志物
	PasswordHash string         `gorm:"not null" json:"-"`                 // 密码哈希（不返回给前端）
	IsStaff      bool           `gorm:"default:false;index" json:"is_staff"` // 是否员工
	IsActive     bool           `gorm:"default:true" json:"is_active"`     // 账号是否可用
	TokenVersion uint64         `gorm:"not null;default:0" json:"-"`       // Token 版本（用于全量失效）
	LastLoginAt  *time.Time     `json:"last_login_at"`                     // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                        // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
