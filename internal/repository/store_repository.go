package repository

import (
	"errors"

	"github.com/dwarmarket/internal/models"

	"gorm.io/gorm"
)

// StoreRepository 商家数据访问接口
type StoreRepository interface {
	List(filter StoreListFilter) ([]models.Store, int64, error)
	GetByID(id uint) (*models.Store, error)
	Create(store *models.Store) error
	Update(store *models.Store) error
	Delete(id uint) error
	CountByName(name string, excludeID *uint) (int64, error)
	CountProducts(storeID uint) (int64, error)
}

// GormStoreRepository GORM 实现
type GormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建商家仓库
func NewStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// List 商家列表
func (r *GormStoreRepository) List(filter StoreListFilter) ([]models.Store, int64, error) {
	query := r.db.Model(&models.Store{})

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		op := likeOperator(r.db)
		arg := containsArg(filter.Search)
		query = query.Where("name "+op+" ? OR address "+op+" ?", arg, arg)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stores []models.Store
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Category").Preload("StoreCategories").
		Order("name ASC").Find(&stores).Error; err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// GetByID 根据 ID 获取商家
func (r *GormStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.Preload("Category").Preload("StoreCategories").
		First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// Create 创建商家
func (r *GormStoreRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}

// Update 更新商家
func (r *GormStoreRepository) Update(store *models.Store) error {
	return r.db.Save(store).Error
}

// Delete 删除商家
func (r *GormStoreRepository) Delete(id uint) error {
	return r.db.Delete(&models.Store{}, id).Error
}

// CountByName 统计商家名称数量（查重用）
func (r *GormStoreRepository) CountByName(name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Store{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountProducts 统计某商家下商品数
func (r *GormStoreRepository) CountProducts(storeID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("store_id = ?", storeID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
