package service

import (
	"strings"

	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"
)

// StoreService 门店服务
type StoreService struct {
	storeRepo    repository.StoreRepository
	categoryRepo repository.CategoryRepository
}

// NewStoreService 创建门店服务
func NewStoreService(storeRepo repository.StoreRepository, categoryRepo repository.CategoryRepository) *StoreService {
	return &StoreService{
		storeRepo:    storeRepo,
		categoryRepo: categoryRepo,
	}
}

// StoreInput 门店创建/更新输入
type StoreInput struct {
	CategoryID  uint
	Name        string
	Address     string
	Description string
	OpensAt     string
	CloseAt     string
	Image       string
	MaxDiscount float64
}

// List 门店列表
func (s *StoreService) List(filter repository.StoreListFilter) ([]models.Store, int64, error) {
	return s.storeRepo.List(filter)
}

// Get 门店详情
func (s *StoreService) Get(id uint) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	return store, nil
}

// Create 创建门店
func (s *StoreService) Create(input StoreInput) (*models.Store, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CategoryID == 0 {
		return nil, ErrInvalidInput
	}
	if input.MaxDiscount < 0 || input.MaxDiscount > 100 {
		return nil, ErrInvalidInput
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID, false)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	count, err := s.storeRepo.CountByName(name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrStoreNameExists
	}

	store := &models.Store{
		CategoryID:  input.CategoryID,
		Name:        name,
		Address:     strings.TrimSpace(input.Address),
		Description: strings.TrimSpace(input.Description),
		OpensAt:     strings.TrimSpace(input.OpensAt),
		CloseAt:     strings.TrimSpace(input.CloseAt),
		Image:       strings.TrimSpace(input.Image),
		MaxDiscount: input.MaxDiscount,
	}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// Update 更新门店
func (s *StoreService) Update(id uint, input StoreInput) (*models.Store, error) {
	store, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || input.CategoryID == 0 {
		return nil, ErrInvalidInput
	}
	if input.MaxDiscount < 0 || input.MaxDiscount > 100 {
		return nil, ErrInvalidInput
	}

	if input.CategoryID != store.CategoryID {
		category, err := s.categoryRepo.GetByID(input.CategoryID, false)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrNotFound
		}
	}

	count, err := s.storeRepo.CountByName(name, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrStoreNameExists
	}

	store.CategoryID = input.CategoryID
	store.Name = name
	store.Address = strings.TrimSpace(input.Address)
	store.Description = strings.TrimSpace(input.Description)
	store.OpensAt = strings.TrimSpace(input.OpensAt)
	store.CloseAt = strings.TrimSpace(input.CloseAt)
	store.Image = strings.TrimSpace(input.Image)
	store.MaxDiscount = input.MaxDiscount
	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// Delete 删除门店（仍有商品时拒绝）
func (s *StoreService) Delete(id uint) error {
	store, err := s.Get(id)
	if err != nil {
		return err
	}

	productCount, err := s.storeRepo.CountProducts(store.ID)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return ErrStoreInUse
	}
	return s.storeRepo.Delete(store.ID)
}
