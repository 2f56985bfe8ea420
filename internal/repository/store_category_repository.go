package repository

import (
	"errors"

	"github.com/dwarmarket/internal/models"

	"gorm.io/gorm"
)

// StoreCategoryRepository 店内分区数据访问接口
type StoreCategoryRepository interface {
	List(storeID uint, withProducts bool) ([]models.StoreCategory, error)
	GetByID(id uint, withProducts bool) (*models.StoreCategory, error)
	Create(storeCategory *models.StoreCategory) error
	Update(storeCategory *models.StoreCategory) error
	Delete(id uint) error
	CountByNameInStore(storeID uint, name string, excludeID *uint) (int64, error)
	CountProducts(storeCategoryID uint) (int64, error)
}

// GormStoreCategoryRepository GORM 实现
type GormStoreCategoryRepository struct {
	db *gorm.DB
}

// NewStoreCategoryRepository 创建店内分区仓库
func NewStoreCategoryRepository(db *gorm.DB) *GormStoreCategoryRepository {
	return &GormStoreCategoryRepository{db: db}
}

// List 分区列表（storeID 为 0 时返回全部）
func (r *GormStoreCategoryRepository) List(storeID uint, withProducts bool) ([]models.StoreCategory, error) {
	query := r.db.Preload("Store")
	if withProducts {
		query = query.Preload("Products", "available = ?", true).
			Preload("Products.Sizes")
	}
	if storeID != 0 {
		query = query.Where("store_id = ?", storeID)
	}
	var storeCategories []models.StoreCategory
	if err := query.Order("name ASC").Find(&storeCategories).Error; err != nil {
		return nil, err
	}
	return storeCategories, nil
}

// GetByID 根据 ID 获取分区
func (r *GormStoreCategoryRepository) GetByID(id uint, withProducts bool) (*models.StoreCategory, error) {
	query := r.db.Preload("Store")
	if withProducts {
		query = query.Preload("Products", "available = ?", true).
			Preload("Products.Sizes")
	}
	var storeCategory models.StoreCategory
	if err := query.First(&storeCategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &storeCategory, nil
}

// Create 创建分区
func (r *GormStoreCategoryRepository) Create(storeCategory *models.StoreCategory) error {
	return r.db.Create(storeCategory).Error
}

// Update 更新分区
func (r *GormStoreCategoryRepository) Update(storeCategory *models.StoreCategory) error {
	return r.db.Save(storeCategory).Error
}

// Delete 删除分区，并把分区下商品回落为未分区
func (r *GormStoreCategoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("store_category_id = ?", id).
			Update("store_category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.StoreCategory{}, id).Error
	})
}

// CountByNameInStore 统计同一商家内分区名称数量（查重用）
func (r *GormStoreCategoryRepository) CountByNameInStore(storeID uint, name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.StoreCategory{}).Where("store_id = ? AND name = ?", storeID, name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountProducts 统计某分区下商品数
func (r *GormStoreCategoryRepository) CountProducts(storeCategoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("store_category_id = ?", storeCategoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
