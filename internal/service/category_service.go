package service

import (
	"strings"

	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"
)

// CategoryService 商圈分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建商圈分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput 分类创建/更新输入
type CategoryInput struct {
	Name  string
	Image string
}

// List 分类列表
func (s *CategoryService) List(withStores bool) ([]models.Category, error) {
	return s.categoryRepo.List(withStores)
}

// Get 分类详情
func (s *CategoryService) Get(id uint, withStores bool) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id, withStores)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	count, err := s.categoryRepo.CountByName(name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameExists
	}

	category := &models.Category{
		Name:  name,
		Image: strings.TrimSpace(input.Image),
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.Get(id, false)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	count, err := s.categoryRepo.CountByName(name, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameExists
	}

	category.Name = name
	category.Image = strings.TrimSpace(input.Image)
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类（仍挂有门店时拒绝）
func (s *CategoryService) Delete(id uint) error {
	category, err := s.Get(id, false)
	if err != nil {
		return err
	}

	storeCount, err := s.categoryRepo.CountStores(category.ID)
	if err != nil {
		return err
	}
	if storeCount > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(category.ID)
}
