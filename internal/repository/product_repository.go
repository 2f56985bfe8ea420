package repository

import (
	"errors"

	"github.com/dwarmarket/internal/models"

	"gorm.io/gorm"
)

// 可售规格生效价的最小值（min_price 过滤与派生字段共用）
const minEffectivePriceExpr = "(SELECT MIN(COALESCE(ps.price_after_discount, ps.price)) FROM product_sizes ps" +
	" WHERE ps.product_id = products.id AND ps.is_available AND ps.deleted_at IS NULL)"

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	GetSizeByID(sizeID uint) (*models.ProductSize, error)
	CreateSize(size *models.ProductSize) error
	UpdateSize(size *models.ProductSize) error
	DeleteSize(sizeID uint) error
	CountOrderItemsByProduct(productID uint) (int64, error)
	CountOrderItemsBySize(sizeID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表（按标题排序）
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	op := likeOperator(r.db)

	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.StoreCategoryID != 0 {
		query = query.Where("store_category_id = ?", filter.StoreCategoryID)
	}
	if filter.OnlyAvailable {
		query = query.Where("available = ?", true)
	}
	if filter.Title != "" {
		query = query.Where("title "+op+" ?", containsArg(filter.Title))
	}
	if filter.StoreName != "" {
		query = query.Where("store_id IN (SELECT id FROM stores WHERE name "+op+" ? AND deleted_at IS NULL)",
			containsArg(filter.StoreName))
	}
	if filter.Search != "" {
		arg := containsArg(filter.Search)
		query = query.Where("title "+op+" ? OR description "+op+" ?", arg, arg)
	}
	if filter.MinPrice != "" {
		query = query.Where(minEffectivePriceExpr+" >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		query = query.Where(minEffectivePriceExpr+" <= ?", filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	query = query.Preload("Store").Preload("StoreCategory")
	if filter.WithSizes {
		query = query.Preload("Sizes")
	}

	var products []models.Product
	if err := query.Order("title ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品（含规格）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Store").Preload("StoreCategory").Preload("Sizes").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品（含规格）
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Store").Preload("StoreCategory").Preload("Sizes").
		Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品及其规格
func (r *GormProductRepository) Delete(id uint) error {
	if err := r.db.Where("product_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySlug 统计 slug 数量（派生 slug 探测用）
func (r *GormProductRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetSizeByID 根据 ID 获取规格
func (r *GormProductRepository) GetSizeByID(sizeID uint) (*models.ProductSize, error) {
	var size models.ProductSize
	if err := r.db.Preload("Product").First(&size, sizeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &size, nil
}

// CreateSize 创建规格
func (r *GormProductRepository) CreateSize(size *models.ProductSize) error {
	return r.db.Create(size).Error
}

// UpdateSize 更新规格
func (r *GormProductRepository) UpdateSize(size *models.ProductSize) error {
	return r.db.Save(size).Error
}

// DeleteSize 删除规格
func (r *GormProductRepository) DeleteSize(sizeID uint) error {
	return r.db.Delete(&models.ProductSize{}, sizeID).Error
}

// CountOrderItemsByProduct 统计引用某商品任一规格的订单项数（删除保护用）
func (r *GormProductRepository) CountOrderItemsByProduct(productID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.OrderItem{}).
		Where("product_size_id IN (SELECT id FROM product_sizes WHERE product_id = ?)", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOrderItemsBySize 统计引用某规格的订单项数（删除保护用）
func (r *GormProductRepository) CountOrderItemsBySize(sizeID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.OrderItem{}).Where("product_size_id = ?", sizeID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
