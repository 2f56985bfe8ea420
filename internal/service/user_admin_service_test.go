package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAdminServiceTest(t *testing.T) (*UserAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_admin_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewUserAdminService(repository.NewUserRepository(db)), db
}

func TestSetActiveBumpsTokenVersionOnDisable(t *testing.T) {
	userAdminService, db := setupUserAdminServiceTest(t)
	createTestCustomer(t, db, 1)

	if _, err := userAdminService.SetActive(9999, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// 状态未变化时不动 token 版本
	unchanged, err := userAdminService.SetActive(1, true)
	if err != nil {
		t.Fatalf("set active no-op failed: %v", err)
	}
	if unchanged.TokenVersion != 0 {
		t.Fatalf("expected untouched token version, got %d", unchanged.TokenVersion)
	}

	disabled, err := userAdminService.SetActive(1, false)
	if err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if disabled.IsActive {
		t.Fatalf("expected user disabled")
	}
	if disabled.TokenVersion != 1 {
		t.Fatalf("expected token version bump on disable, got %d", disabled.TokenVersion)
	}

	enabled, err := userAdminService.SetActive(1, true)
	if err != nil {
		t.Fatalf("enable user failed: %v", err)
	}
	if enabled.TokenVersion != 1 {
		t.Fatalf("expected no bump on enable, got %d", enabled.TokenVersion)
	}
}

func TestSetStaffTogglesWithTokenBump(t *testing.T) {
	userAdminService, db := setupUserAdminServiceTest(t)
	createTestCustomer(t, db, 1)

	granted, err := userAdminService.SetStaff(1, true)
	if err != nil {
		t.Fatalf("grant staff failed: %v", err)
	}
	if !granted.IsStaff || granted.TokenVersion != 1 {
		t.Fatalf("unexpected state after grant: staff=%v version=%d", granted.IsStaff, granted.TokenVersion)
	}

	revoked, err := userAdminService.SetStaff(1, false)
	if err != nil {
		t.Fatalf("revoke staff failed: %v", err)
	}
	if revoked.IsStaff || revoked.TokenVersion != 2 {
		t.Fatalf("unexpected state after revoke: staff=%v version=%d", revoked.IsStaff, revoked.TokenVersion)
	}
}

func TestUserListFilters(t *testing.T) {
	userAdminService, db := setupUserAdminServiceTest(t)
	createTestCustomer(t, db, 1)
	createTestCustomer(t, db, 2)
	if err := db.Model(&models.User{}).Where("id = ?", 2).Update("is_staff", true).Error; err != nil {
		t.Fatalf("mark staff failed: %v", err)
	}

	users, total, err := userAdminService.List(repository.UserListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Fatalf("expected 2 users, got total=%d len=%d", total, len(users))
	}

	staff := true
	users, total, err = userAdminService.List(repository.UserListFilter{Page: 1, PageSize: 10, Staff: &staff})
	if err != nil {
		t.Fatalf("list staff failed: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].ID != 2 {
		t.Fatalf("expected only staff user 2, got total=%d", total)
	}
}
