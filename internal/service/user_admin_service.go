package service

import (
	"context"

	"github.com/dwarmarket/internal/cache"
	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"
)

// UserAdminService 管理端用户服务
type UserAdminService struct {
	userRepo repository.UserRepository
}

// NewUserAdminService 创建管理端用户服务
func NewUserAdminService(userRepo repository.UserRepository) *UserAdminService {
	return &UserAdminService{userRepo: userRepo}
}

// List 用户列表
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// Get 用户详情
func (s *UserAdminService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// SetActive 启用/停用用户，停用时提升 token 版本立即踢下线
func (s *UserAdminService) SetActive(id uint, active bool) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return user, nil
	}

	user.IsActive = active
	if !active {
		user.TokenVersion++
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	return user, nil
}

// SetStaff 授予/收回员工身份
func (s *UserAdminService) SetStaff(id uint, isStaff bool) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if user.IsStaff == isStaff {
		return user, nil
	}

	user.IsStaff = isStaff
	user.TokenVersion++
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	return user, nil
}
