package service

import (
	"strings"

	"github.com/dwarmarket/internal/constants"
	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"
)

// ProductService 商品与规格服务
type ProductService struct {
	productRepo       repository.ProductRepository
	storeRepo         repository.StoreRepository
	storeCategoryRepo repository.StoreCategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	storeCategoryRepo repository.StoreCategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:       productRepo,
		storeRepo:         storeRepo,
		storeCategoryRepo: storeCategoryRepo,
	}
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	StoreID         uint
	StoreCategoryID *uint
	Title           string
	Description     string
	Image           string
	Available       *bool
}

// ProductSizeInput 规格创建/更新输入
type ProductSizeInput struct {
	SizeName           string
	SizeType           string
	Price              string
	PriceAfterDiscount *string
	IsAvailable        *bool
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// Get 商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetBySlug 根据 slug 获取商品详情
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品（slug 由标题派生，冲突时追加序号）
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.StoreID == 0 {
		return nil, ErrInvalidInput
	}

	store, err := s.storeRepo.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	if err := s.checkStoreCategory(input.StoreCategoryID, input.StoreID); err != nil {
		return nil, err
	}

	productSlug, err := deriveUniqueSlug(title, s.slugCounter(nil))
	if err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}
	product := &models.Product{
		StoreID:         input.StoreID,
		StoreCategoryID: input.StoreCategoryID,
		Title:           title,
		Slug:            productSlug,
		Description:     strings.TrimSpace(input.Description),
		Image:           strings.TrimSpace(input.Image),
		Available:       available,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return s.Get(product.ID)
}

// Update 更新商品，标题变化时重新派生 slug
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	storeID := product.StoreID
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
	if err := s.checkStoreCategory(input.StoreCategoryID, storeID); err != nil {
		return nil, err
	}

	if title != product.Title {
		// 排除自身，避免改回原标题时被迫追加序号
		productSlug, err := deriveUniqueSlug(title, s.slugCounter(&product.ID))
		if err != nil {
			return nil, err
		}
		product.Slug = productSlug
	}

	product.StoreID = storeID
	product.StoreCategoryID = input.StoreCategoryID
	product.Title = title
	product.Description = strings.TrimSpace(input.Description)
	product.Image = strings.TrimSpace(input.Image)
	if input.Available != nil {
		product.Available = *input.Available
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.Get(product.ID)
}

// Delete 删除商品（已被订单引用时拒绝）
func (s *ProductService) Delete(id uint) error {
	product, err := s.Get(id)
	if err != nil {
		return err
	}

	orderRefs, err := s.productRepo.CountOrderItemsByProduct(product.ID)
	if err != nil {
		return err
	}
	if orderRefs > 0 {
		return ErrProductInOrders
	}
	return s.productRepo.Delete(product.ID)
}

// GetSize 规格详情
func (s *ProductService) GetSize(productID, sizeID uint) (*models.ProductSize, error) {
	size, err := s.productRepo.GetSizeByID(sizeID)
	if err != nil {
		return nil, err
	}
	if size == nil || size.ProductID != productID {
		return nil, ErrNotFound
	}
	return size, nil
}

// CreateSize 为商品新增规格
func (s *ProductService) CreateSize(productID uint, input ProductSizeInput) (*models.ProductSize, error) {
	product, err := s.Get(productID)
	if err != nil {
		return nil, err
	}

	size := &models.ProductSize{ProductID: product.ID, IsAvailable: true}
	if err := s.applySizeInput(size, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.CreateSize(size); err != nil {
		return nil, err
	}
	return size, nil
}

// UpdateSize 更新规格
func (s *ProductService) UpdateSize(productID, sizeID uint, input ProductSizeInput) (*models.ProductSize, error) {
	size, err := s.GetSize(productID, sizeID)
	if err != nil {
		return nil, err
	}
	if err := s.applySizeInput(size, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.UpdateSize(size); err != nil {
		return nil, err
	}
	return size, nil
}

// DeleteSize 删除规格（已被订单引用时拒绝）
func (s *ProductService) DeleteSize(productID, sizeID uint) error {
	size, err := s.GetSize(productID, sizeID)
	if err != nil {
		return err
	}

	orderRefs, err := s.productRepo.CountOrderItemsBySize(size.ID)
	if err != nil {
		return err
	}
	if orderRefs > 0 {
		return ErrSizeInOrders
	}
	return s.productRepo.DeleteSize(size.ID)
}

// applySizeInput 校验并应用规格字段，折扣价不得高于原价
func (s *ProductService) applySizeInput(size *models.ProductSize, input ProductSizeInput) error {
	sizeName := strings.TrimSpace(input.SizeName)
	if sizeName == "" {
		return ErrInvalidInput
	}

	sizeType := strings.TrimSpace(input.SizeType)
	if sizeType == "" {
		sizeType = constants.SizeTypePiece
	}
	switch sizeType {
	case constants.SizeTypeWeight, constants.SizeTypePiece, constants.SizeTypeVolume:
	default:
		return ErrInvalidInput
	}

	price, err := models.NewMoneyFromString(strings.TrimSpace(input.Price))
	if err != nil || price.IsNegative() {
		return ErrInvalidInput
	}

	var discounted *models.Money
	if input.PriceAfterDiscount != nil && strings.TrimSpace(*input.PriceAfterDiscount) != "" {
		d, err := models.NewMoneyFromString(strings.TrimSpace(*input.PriceAfterDiscount))
		if err != nil || d.IsNegative() {
			return ErrInvalidInput
		}
		if d.GreaterThan(price.Decimal) {
			return ErrDiscountAbovePrice
		}
		discounted = &d
	}

	size.SizeName = sizeName
	size.SizeType = sizeType
	size.Price = price
	size.PriceAfterDiscount = discounted
	if input.IsAvailable != nil {
		size.IsAvailable = *input.IsAvailable
	}
	return nil
}

// slugCounter 绑定 slug 查重回调，excludeID 用于更新时排除自身
func (s *ProductService) slugCounter(excludeID *uint) slugCounter {
	return func(candidate string) (int64, error) {
		return s.productRepo.CountBySlug(candidate, excludeID)
	}
}

// checkStoreCategory 校验分区存在且归属指定商家
func (s *ProductService) checkStoreCategory(storeCategoryID *uint, storeID uint) error {
	if storeCategoryID == nil {
		return nil
	}
	storeCategory, err := s.storeCategoryRepo.GetByID(*storeCategoryID, false)
	if err != nil {
		return err
	}
	if storeCategory == nil || storeCategory.StoreID != storeID {
		return ErrInvalidInput
	}
	return nil
}
