package service

import (
	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartItemView 购物车条目视图，含价格拆解
type CartItemView struct {
	ID            uint         `json:"id"`
	ProductSizeID uint         `json:"product_size_id"`
	ProductID     uint         `json:"product_id"`
	ProductTitle  string       `json:"product_title"`
	ProductSlug   string       `json:"product_slug"`
	ProductImage  string       `json:"product_image"`
	SizeName      string       `json:"size_name"`
	SizeType      string       `json:"size_type"`
	Quantity      int          `json:"quantity"`
	UnitPrice     models.Money `json:"unit_price"`
	BasePrice     models.Money `json:"base_price"`
	DiscountPct   int          `json:"discount_pct"`
	Subtotal      models.Money `json:"subtotal"`
	IsAvailable   bool         `json:"is_available"`
}

// CartView 购物车视图
type CartView struct {
	ID         string         `json:"id"`
	Items      []CartItemView `json:"items"`
	ItemCount  int            `json:"item_count"`
	ItemsTotal models.Money   `json:"items_total"`
}

// GetOrCreate 获取用户购物车，不存在则创建
func (s *CartService) GetOrCreate(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &models.Cart{UserID: userID}
	if err := s.cartRepo.Create(cart); err != nil {
		// 并发创建时回读已存在的购物车
		exist, getErr := s.cartRepo.GetByUser(userID)
		if getErr == nil && exist != nil {
			return exist, nil
		}
		return nil, err
	}
	return s.cartRepo.GetByUser(userID)
}

// Detail 购物车明细（逐条计算单价与小计，汇总 items_total）
func (s *CartService) Detail(userID uint) (*CartView, error) {
	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return buildCartView(cart), nil
}

// AddItem 加入购物车，已存在同规格条目时合并数量
func (s *CartService) AddItem(userID, sizeID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	size, err := s.productRepo.GetSizeByID(sizeID)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, ErrNotFound
	}
	if !size.IsAvailable || (size.Product != nil && !size.Product.Available) {
		return nil, ErrProductNotAvailable
	}

	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(cart.ID, sizeID)
	if err != nil {
		return nil, err
	}
	if item != nil {
		if err := s.cartRepo.UpdateItemQuantity(item.ID, item.Quantity+quantity); err != nil {
			return nil, err
		}
	} else {
		newItem := &models.CartItem{
			CartID:        cart.ID,
			ProductSizeID: sizeID,
			Quantity:      quantity,
		}
		if err := s.cartRepo.CreateItem(newItem); err != nil {
			return nil, err
		}
	}
	return s.Detail(userID)
}

// UpdateItemQuantity 调整条目数量
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.Detail(userID)
}

// RemoveItem 移除条目
func (s *CartService) RemoveItem(userID, itemID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.Detail(userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return nil, err
	}
	return s.Detail(userID)
}

// buildCartView 由购物车模型构造视图
func buildCartView(cart *models.Cart) *CartView {
	view := &CartView{
		ID:         cart.ID,
		Items:      make([]CartItemView, 0, len(cart.Items)),
		ItemsTotal: models.ZeroMoney(),
	}
	for _, item := range cart.Items {
		if item.ProductSize == nil {
			continue
		}
		size := item.ProductSize
		unitPrice := size.EffectivePrice()
		subtotal := unitPrice.MulInt(item.Quantity)

		itemView := CartItemView{
			ID:            item.ID,
			ProductSizeID: item.ProductSizeID,
			ProductID:     size.ProductID,
			SizeName:      size.SizeName,
			SizeType:      size.SizeType,
			Quantity:      item.Quantity,
			UnitPrice:     unitPrice,
			BasePrice:     size.Price,
			DiscountPct:   size.DiscountPct(),
			Subtotal:      subtotal,
			IsAvailable:   size.IsAvailable,
		}
		if size.Product != nil {
			itemView.ProductTitle = size.Product.Title
			itemView.ProductSlug = size.Product.Slug
			itemView.ProductImage = size.Product.Image
			if !size.Product.Available {
				itemView.IsAvailable = false
			}
		}

		view.Items = append(view.Items, itemView)
		view.ItemCount += item.Quantity
		view.ItemsTotal = view.ItemsTotal.AddMoney(subtotal)
	}
	return view
}
