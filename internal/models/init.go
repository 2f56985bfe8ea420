package models

import (
	"strings"

	"github.com/dwarmarket/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultStaff 初始化默认员工账号（首次启动用）
func InitDefaultStaff(phone, password string) error {
	var count int64
	DB.Model(&User{}).Where("is_staff = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	if strings.TrimSpace(phone) == "" {
		phone = "01000000000"
	}
	if password == "" {
		password = "staff123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	staff := User{
		Phone:        phone,
		FullName:     "Staff",
		PasswordHash: string(hash),
		IsStaff:      true,
		IsActive:     true,
	}
	if err := DB.Create(&staff).Error; err != nil {
		return err
	}

	if password == "staff123" {
		logger.Warnw("default_staff_created_with_default_password", "phone", phone)
		logger.Warnw("default_staff_password_change_required", "phone", phone)
	} else {
		logger.Warnw("default_staff_created", "phone", phone, "password_hidden", true)
	}
	return nil
}
