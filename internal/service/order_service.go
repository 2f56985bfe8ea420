package service

import (
	"strings"

	"github.com/dwarmarket/internal/constants"
	"github.com/dwarmarket/internal/logger"
	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/queue"
	"github.com/dwarmarket/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		queueClient: queueClient,
	}
}

// OrderItemInput 管理端订单项输入
type OrderItemInput struct {
	ProductSizeID uint
	Quantity      int
}

// Checkout 购物车结算：锁定价格生成订单，结算后删除购物车。
// 单价在此刻冻结为规格生效价，之后商品调价不影响既有订单。
func (s *OrderService) Checkout(userID uint, notes string) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	var orderID uint
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cart, err := cartRepo.GetByUserForUpdate(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartEmpty
		}
		cartItems, err := cartRepo.ListItems(cart.ID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, cartItem := range cartItems {
			size := cartItem.ProductSize
			if size == nil {
				return ErrProductNotAvailable
			}
			if !size.IsAvailable || (size.Product != nil && !size.Product.Available) {
				return ErrProductNotAvailable
			}
			orderItems = append(orderItems, models.OrderItem{
				ProductSizeID: cartItem.ProductSizeID,
				Quantity:      cartItem.Quantity,
				UnitPrice:     size.EffectivePrice(),
			})
		}

		order := &models.Order{
			CustomerID: userID,
			Status:     constants.OrderStatusPending,
			TotalPrice: models.ZeroMoney(),
			Notes:      strings.TrimSpace(notes),
		}
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		if err := s.recalculateTotal(tx, order); err != nil {
			return err
		}
		if err := cartRepo.Delete(cart.ID); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(orderID, constants.OrderStatusPending)
	return s.GetAdmin(orderID)
}

// Get 获取用户自己的订单详情
func (s *OrderService) Get(orderID, customerID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetAdmin 管理端订单详情
func (s *OrderService) GetAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByCustomer 用户订单列表
func (s *OrderService) ListByCustomer(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.CustomerID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.ListByCustomer(filter)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// CancelByCustomer 用户取消订单，仅待处理状态可取消
func (s *OrderService) CancelByCustomer(orderID, customerID uint) (*models.Order, error) {
	order, err := s.Get(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderNotPending
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCanceled); err != nil {
		return nil, err
	}

	s.notifyStatusChange(order.ID, constants.OrderStatusCanceled)
	return s.Get(orderID, customerID)
}

// DeleteByCustomer 用户删除订单，仅待处理状态可删除
func (s *OrderService) DeleteByCustomer(orderID, customerID uint) error {
	order, err := s.Get(orderID, customerID)
	if err != nil {
		return err
	}
	if order.Status != constants.OrderStatusPending {
		return ErrOrderNotPending
	}
	return s.orderRepo.Delete(order.ID)
}

// UpdateStatus 管理端更新订单状态，按状态机校验流转
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	newStatus := normalizeOrderStatus(status)
	if newStatus == "" {
		return nil, ErrOrderStatusInvalid
	}

	order, err := s.GetAdmin(orderID)
	if err != nil {
		return nil, err
	}
	if newStatus == order.Status {
		return order, nil
	}
	if !canTransitionOrderStatus(order.Status, newStatus) {
		return nil, ErrOrderStatusTransition
	}
	if err := s.orderRepo.UpdateStatus(order.ID, newStatus); err != nil {
		return nil, err
	}

	s.notifyStatusChange(order.ID, newStatus)
	return s.GetAdmin(orderID)
}

// DeleteAdmin 管理端删除订单
func (s *OrderService) DeleteAdmin(orderID uint) error {
	order, err := s.GetAdmin(orderID)
	if err != nil {
		return err
	}
	return s.orderRepo.Delete(order.ID)
}

// AddItem 管理端为订单追加条目：同规格条目合并数量，新条目按当前生效价冻结单价
func (s *OrderService) AddItem(orderID uint, input OrderItemInput) (*models.Order, error) {
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)

		order, err := s.lockPendingOrder(tx, orderID)
		if err != nil {
			return err
		}

		exist, err := orderRepo.GetItemBySize(order.ID, input.ProductSizeID)
		if err != nil {
			return err
		}
		if exist != nil {
			exist.Quantity += input.Quantity
			if err := orderRepo.UpdateItem(exist); err != nil {
				return err
			}
			return s.recalculateTotal(tx, order)
		}

		size, err := s.productRepo.WithTx(tx).GetSizeByID(input.ProductSizeID)
		if err != nil {
			return err
		}
		if size == nil {
			return ErrNotFound
		}
		if !size.IsAvailable || (size.Product != nil && !size.Product.Available) {
			return ErrProductNotAvailable
		}
		item := &models.OrderItem{
			OrderID:       order.ID,
			ProductSizeID: size.ID,
			Quantity:      input.Quantity,
			UnitPrice:     size.EffectivePrice(),
		}
		if err := orderRepo.CreateItem(item); err != nil {
			return err
		}
		return s.recalculateTotal(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.GetAdmin(orderID)
}

// UpdateItemQuantity 管理端调整订单项数量，冻结单价保持不变
func (s *OrderService) UpdateItemQuantity(orderID, itemID uint, quantity int) (*models.Order, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)

		order, err := s.lockPendingOrder(tx, orderID)
		if err != nil {
			return err
		}

		item, err := orderRepo.GetItemByID(order.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrOrderItemNotFound
		}
		item.Quantity = quantity
		if err := orderRepo.UpdateItem(item); err != nil {
			return err
		}
		return s.recalculateTotal(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.GetAdmin(orderID)
}

// RemoveItem 管理端移除订单项，移除末项后总价归零
func (s *OrderService) RemoveItem(orderID, itemID uint) (*models.Order, error) {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)

		order, err := s.lockPendingOrder(tx, orderID)
		if err != nil {
			return err
		}

		item, err := orderRepo.GetItemByID(order.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrOrderItemNotFound
		}
		if err := orderRepo.DeleteItem(item.ID); err != nil {
			return err
		}
		return s.recalculateTotal(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.GetAdmin(orderID)
}

// ReplaceItems 管理端整单替换订单项：输入内重复规格先合并，
// 已有条目保留冻结单价，新条目按当前生效价冻结，最后重算一次总价。
func (s *OrderService) ReplaceItems(orderID uint, inputs []OrderItemInput) (*models.Order, error) {
	merged := make(map[uint]int)
	ordered := make([]uint, 0, len(inputs))
	for _, input := range inputs {
		if input.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if _, ok := merged[input.ProductSizeID]; !ok {
			ordered = append(ordered, input.ProductSizeID)
		}
		merged[input.ProductSizeID] += input.Quantity
	}
	if len(merged) == 0 {
		return nil, ErrInvalidInput
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		order, err := s.lockPendingOrder(tx, orderID)
		if err != nil {
			return err
		}

		existing, err := orderRepo.ListItems(order.ID)
		if err != nil {
			return err
		}
		frozenPrices := make(map[uint]models.Money, len(existing))
		for _, item := range existing {
			frozenPrices[item.ProductSizeID] = item.UnitPrice
			if err := orderRepo.DeleteItem(item.ID); err != nil {
				return err
			}
		}

		for _, sizeID := range ordered {
			unitPrice, frozen := frozenPrices[sizeID]
			if !frozen {
				size, err := productRepo.GetSizeByID(sizeID)
				if err != nil {
					return err
				}
				if size == nil {
					return ErrNotFound
				}
				if !size.IsAvailable || (size.Product != nil && !size.Product.Available) {
					return ErrProductNotAvailable
				}
				unitPrice = size.EffectivePrice()
			}
			item := &models.OrderItem{
				OrderID:       order.ID,
				ProductSizeID: sizeID,
				Quantity:      merged[sizeID],
				UnitPrice:     unitPrice,
			}
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return s.recalculateTotal(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.GetAdmin(orderID)
}

// lockPendingOrder 行锁获取订单并校验仍处于待处理状态
func (s *OrderService) lockPendingOrder(tx *gorm.DB, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.WithTx(tx).GetByIDForUpdate(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderNotPending
	}
	return order, nil
}

// recalculateTotal 订单总价唯一重算入口：在写事务内按
// Σ(数量 × 冻结单价) 重算，与当前存储值相等时跳过写回，每次条目变更调用一次。
func (s *OrderService) recalculateTotal(tx *gorm.DB, order *models.Order) error {
	orderRepo := s.orderRepo.WithTx(tx)
	items, err := orderRepo.ListItems(order.ID)
	if err != nil {
		return err
	}
	total := models.ZeroMoney()
	for _, item := range items {
		total = total.AddMoney(item.Subtotal())
	}
	if total.EqualMoney(order.TotalPrice) {
		return nil
	}
	if err := orderRepo.UpdateTotal(order.ID, total); err != nil {
		return err
	}
	order.TotalPrice = total
	return nil
}

// notifyStatusChange 提交后入队状态邮件，收件邮箱为空时跳过
func (s *OrderService) notifyStatusChange(orderID uint, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() || orderID == 0 {
		return
	}
	receiverEmail, err := s.orderRepo.ResolveReceiverEmailByOrderID(orderID)
	if err == nil && strings.TrimSpace(receiverEmail) == "" {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}
