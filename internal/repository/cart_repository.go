package repository

import (
	"errors"

	"github.com/dwarmarket/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	GetByUserForUpdate(userID uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	Delete(cartID string) error
	ListItems(cartID string) ([]models.CartItem, error)
	GetItem(cartID string, productSizeID uint) (*models.CartItem, error)
	GetItemByID(cartID string, itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(itemID uint) error
	ClearItems(cartID string) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车（含购物车项与规格）
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.ProductSize").
		Preload("Items.ProductSize.Product").
		Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetByUserForUpdate 行锁获取用户购物车（结算事务用）
func (r *GormCartRepository) GetByUserForUpdate(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// Delete 删除购物车及其购物车项（结算后调用）
func (r *GormCartRepository) Delete(cartID string) error {
	if err := r.ClearItems(cartID); err != nil {
		return err
	}
	return r.db.Delete(&models.Cart{}, "id = ?", cartID).Error
}

// ListItems 获取购物车项（含规格与商品）
func (r *GormCartRepository) ListItems(cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.
		Preload("ProductSize").
		Preload("ProductSize.Product").
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 按规格获取购物车项（重复加购合并用）
func (r *GormCartRepository) GetItem(cartID string, productSizeID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND product_size_id = ?", cartID, productSizeID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByID 按主键获取购物车项（归属校验用）
func (r *GormCartRepository) GetItemByID(cartID string, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("ProductSize").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItemQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// ClearItems 清空购物车项
func (r *GormCartRepository) ClearItems(cartID string) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
