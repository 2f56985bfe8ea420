package repository

import (
	"errors"

	"github.com/dwarmarket/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 商圈分类数据访问接口
type CategoryRepository interface {
	List(withStores bool) ([]models.Category, error)
	GetByID(id uint, withStores bool) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountByName(name string, excludeID *uint) (int64, error)
	CountStores(categoryID uint) (int64, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 分类列表
func (r *GormCategoryRepository) List(withStores bool) ([]models.Category, error) {
	var categories []models.Category
	query := r.db
	if withStores {
		query = query.Preload("Stores")
	}
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id uint, withStores bool) (*models.Category, error) {
	var category models.Category
	query := r.db
	if withStores {
		query = query.Preload("Stores")
	}
	if err := query.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete 删除分类
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// CountByName 统计分类名称数量（查重用）
func (r *GormCategoryRepository) CountByName(name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Category{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountStores 统计某分类下商家数
func (r *GormCategoryRepository) CountStores(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Store{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
