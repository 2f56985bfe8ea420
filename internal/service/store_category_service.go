package service

import (
	"strings"

	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"
)

// StoreCategoryService 店内分区服务
type StoreCategoryService struct {
	storeCategoryRepo repository.StoreCategoryRepository
	storeRepo         repository.StoreRepository
}

// NewStoreCategoryService 创建店内分区服务
func NewStoreCategoryService(storeCategoryRepo repository.StoreCategoryRepository, storeRepo repository.StoreRepository) *StoreCategoryService {
	return &StoreCategoryService{
		storeCategoryRepo: storeCategoryRepo,
		storeRepo:         storeRepo,
	}
}

// StoreCategoryInput 分区创建/更新输入
type StoreCategoryInput struct {
	StoreID uint
	Name    string
	Image   string
}

// List 分区列表，storeID 为 0 时返回全部
func (s *StoreCategoryService) List(storeID uint, withProducts bool) ([]models.StoreCategory, error) {
	return s.storeCategoryRepo.List(storeID, withProducts)
}

// Get 分区详情
func (s *StoreCategoryService) Get(id uint, withProducts bool) (*models.StoreCategory, error) {
	storeCategory, err := s.storeCategoryRepo.GetByID(id, withProducts)
	if err != nil {
		return nil, err
	}
	if storeCategory == nil {
		return nil, ErrNotFound
	}
	return storeCategory, nil
}

// Create 创建分区
func (s *StoreCategoryService) Create(input StoreCategoryInput) (*models.StoreCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.StoreID == 0 {
		return nil, ErrInvalidInput
	}

	store, err := s.storeRepo.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}

	count, err := s.storeCategoryRepo.CountByNameInStore(input.StoreID, name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrStoreCategoryExists
	}

	storeCategory := &models.StoreCategory{
		StoreID: input.StoreID,
		Name:    name,
		Image:   strings.TrimSpace(input.Image),
	}
	if err := s.storeCategoryRepo.Create(storeCategory); err != nil {
		return nil, err
	}
	return storeCategory, nil
}

// Update 更新分区
func (s *StoreCategoryService) Update(id uint, input StoreCategoryInput) (*models.StoreCategory, error) {
	storeCategory, err := s.Get(id, false)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	storeID := storeCategory.StoreID
	if input.StoreID != 0 && input.StoreID != storeID {
		store, err := s.storeRepo.GetByID(input.StoreID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, ErrNotFound
		}
		storeID = input.StoreID
	}

	count, err := s.storeCategoryRepo.CountByNameInStore(storeID, name, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrStoreCategoryExists
	}

	storeCategory.StoreID = storeID
	storeCategory.Name = name
	storeCategory.Image = strings.TrimSpace(input.Image)
	if err := s.storeCategoryRepo.Update(storeCategory); err != nil {
		return nil, err
	}
	return storeCategory, nil
}

// Delete 删除分区，分区下的商品回落为未分区
func (s *StoreCategoryService) Delete(id uint) error {
	storeCategory, err := s.Get(id, false)
	if err != nil {
		return err
	}
	return s.storeCategoryRepo.Delete(storeCategory.ID)
}
