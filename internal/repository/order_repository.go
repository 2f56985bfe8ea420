package repository

import (
	"errors"

	"github.com/dwarmarket/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDForUpdate(id uint) (*models.Order, error)
	GetByIDAndCustomer(id uint, customerID uint) (*models.Order, error)
	ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string) error
	UpdateTotal(id uint, total models.Money) error
	Delete(id uint) error
	ListItems(orderID uint) ([]models.OrderItem, error)
	GetItemByID(orderID uint, itemID uint) (*models.OrderItem, error)
	GetItemBySize(orderID uint, productSizeID uint) (*models.OrderItem, error)
	CreateItem(item *models.OrderItem) error
	UpdateItem(item *models.OrderItem) error
	DeleteItem(itemID uint) error
	ResolveReceiverEmailByOrderID(orderID uint) (string, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		Preload("Items.ProductSize").
		Preload("Items.ProductSize.Product")
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withItems(r.db.Preload("Customer")).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUpdate 行锁获取订单（总价重算事务用）
func (r *GormOrderRepository) GetByIDForUpdate(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndCustomer 获取用户自己的订单详情
func (r *GormOrderRepository) GetByIDAndCustomer(id uint, customerID uint) (*models.Order, error) {
	var order models.Order
	if err := r.withItems(r.db).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByCustomer 获取用户订单列表
func (r *GormOrderRepository) ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("customer_id = ?", filter.CustomerID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := r.withItems(query).Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAdmin 管理端订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})

	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := r.withItems(query.Preload("Customer")).Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

// UpdateTotal 更新订单总价
func (r *GormOrderRepository) UpdateTotal(id uint, total models.Money) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("total_price", total).Error
}

// Delete 删除订单及其订单项
func (r *GormOrderRepository) Delete(id uint) error {
	if err := r.db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Order{}, id).Error
}

// ListItems 获取订单项
func (r *GormOrderRepository) ListItems(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Preload("ProductSize").Preload("ProductSize.Product").
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemByID 按主键获取订单项（归属校验用）
func (r *GormOrderRepository) GetItemByID(orderID uint, itemID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemBySize 按规格获取订单项（重复行合并用）
func (r *GormOrderRepository) GetItemBySize(orderID uint, productSizeID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.Where("order_id = ? AND product_size_id = ?", orderID, productSizeID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建订单项
func (r *GormOrderRepository) CreateItem(item *models.OrderItem) error {
	return r.db.Create(item).Error
}

// UpdateItem 更新订单项
func (r *GormOrderRepository) UpdateItem(item *models.OrderItem) error {
	return r.db.Save(item).Error
}

// DeleteItem 删除订单项
func (r *GormOrderRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.OrderItem{}, itemID).Error
}

// ResolveReceiverEmailByOrderID 根据订单 ID 解析状态通知的收件邮箱。
func (r *GormOrderRepository) ResolveReceiverEmailByOrderID(orderID uint) (string, error) {
	if orderID == 0 {
		return "", nil
	}

	var row struct {
		Email string
	}
	if err := r.db.Model(&models.User{}).
		Select("users.email").
		Joins("JOIN orders ON orders.customer_id = users.id").
		Where("orders.id = ?", orderID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.Email, nil
}
