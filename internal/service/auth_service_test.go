package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dwarmarket/internal/config"
	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "auth-service-test-secret-key-0123456789"
	cfg.UserJWT.ExpireHours = 24
	cfg.UserJWT.RememberMeExpireHours = 168
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLower:  true,
		RequireNumber: true,
	}

	userRepo := repository.NewUserRepository(db)
	return NewUserAuthService(cfg, userRepo), db
}

func TestRegisterAndLogin(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, token, _, err := authService.Register(RegisterInput{
		Phone:           "+20 100 000 0001",
		FullName:        "Ahmed Hassan",
		Password:        "passw0rd1",
		ConfirmPassword: "passw0rd1",
		Address:         "12 El Tahrir St, Dokki",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Phone != "+201000000001" {
		t.Fatalf("expected normalized phone, got %s", user.Phone)
	}
	if token == "" {
		t.Fatalf("expected token on register")
	}
	if !user.IsActive {
		t.Fatalf("expected new user to be active")
	}
	if user.IsStaff {
		t.Fatalf("expected new user to be non-staff")
	}
	if user.PasswordHash == "passw0rd1" {
		t.Fatalf("expected password to be hashed")
	}

	claims, err := authService.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Phone != user.Phone {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// 空格不同的同一手机号视为重复
	if _, _, _, err := authService.Register(RegisterInput{
		Phone:           "+201000000001",
		FullName:        "Someone Else",
		Password:        "passw0rd1",
		ConfirmPassword: "passw0rd1",
	}); !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected ErrPhoneExists, got %v", err)
	}

	logged, loginToken, _, err := authService.Login("+20 100 000 0001", "passw0rd1", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || loginToken == "" {
		t.Fatalf("unexpected login result")
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("expected last_login_at to be set")
	}
}

func TestRegisterValidation(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{
			name:  "bad phone",
			input: RegisterInput{Phone: "abc", FullName: "A", Password: "passw0rd1", ConfirmPassword: "passw0rd1"},
			want:  ErrInvalidInput,
		},
		{
			name:  "blank name",
			input: RegisterInput{Phone: "+201000000002", FullName: "  ", Password: "passw0rd1", ConfirmPassword: "passw0rd1"},
			want:  ErrInvalidInput,
		},
		{
			name:  "password mismatch",
			input: RegisterInput{Phone: "+201000000002", FullName: "A", Password: "passw0rd1", ConfirmPassword: "other"},
			want:  ErrPasswordMismatch,
		},
		{
			name:  "weak password",
			input: RegisterInput{Phone: "+201000000002", FullName: "A", Password: "short1", ConfirmPassword: "short1"},
			want:  ErrWeakPassword,
		},
	}
	for _, tc := range cases {
		if _, _, _, err := authService.Register(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestLoginFailures(t *testing.T) {
	authService, db := setupAuthServiceTest(t)

	if _, _, _, err := authService.Login("+201000000009", "whatever1", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown phone, got %v", err)
	}

	user, _, _, err := authService.Register(RegisterInput{
		Phone:           "+201000000003",
		FullName:        "Mona Adel",
		Password:        "passw0rd1",
		ConfirmPassword: "passw0rd1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := authService.Login(user.Phone, "wrong-pass1", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := authService.Login(user.Phone, "passw0rd1", false); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestRememberMeExtendsExpiry(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, _, _, err := authService.Register(RegisterInput{
		Phone:           "+201000000004",
		FullName:        "Omar Farouk",
		Password:        "passw0rd1",
		ConfirmPassword: "passw0rd1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, normalExpiry, err := authService.Login(user.Phone, "passw0rd1", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	_, _, rememberExpiry, err := authService.Login(user.Phone, "passw0rd1", true)
	if err != nil {
		t.Fatalf("remember-me login failed: %v", err)
	}
	if !rememberExpiry.After(normalExpiry.Add(24 * time.Hour)) {
		t.Fatalf("expected remember-me expiry to be much later: %v vs %v", rememberExpiry, normalExpiry)
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, token, _, err := authService.Register(RegisterInput{
		Phone:           "+201000000005",
		FullName:        "Sara Ibrahim",
		Password:        "passw0rd1",
		ConfirmPassword: "passw0rd1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := authService.ChangePassword(user.ID, "wrong-pass1", "newpassw0rd", "newpassw0rd"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong old password, got %v", err)
	}
	if err := authService.ChangePassword(user.ID, "passw0rd1", "newpassw0rd", "mismatch"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := authService.ChangePassword(user.ID, "passw0rd1", "newpassw0rd", "newpassw0rd"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	refreshed, err := authService.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if refreshed.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", refreshed.TokenVersion)
	}

	// 旧 token 仍可解析，但携带的版本号已落后
	claims, err := authService.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse old token failed: %v", err)
	}
	if claims.TokenVersion == refreshed.TokenVersion {
		t.Fatalf("expected stale token version in old token")
	}

	if _, _, _, err := authService.Login(user.Phone, "passw0rd1", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
	if _, _, _, err := authService.Login(user.Phone, "newpassw0rd", false); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
