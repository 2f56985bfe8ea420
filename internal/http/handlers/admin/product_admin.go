package admin

import (
	"strconv"
	"strings"

	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/repository"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	StoreID         uint                 `json:"store_id" binding:"required"`
	StoreCategoryID *uint                `json:"store_category_id"`
	Title           string               `json:"title" binding:"required"`
	Description     string               `json:"description"`
	Image           string               `json:"image"`
	Available       *bool                `json:"available"`
	Sizes           []ProductSizeRequest `json:"sizes"`
}

// ProductSizeRequest 商品规格请求
type ProductSizeRequest struct {
	SizeName           string  `json:"size_name" binding:"required"`
	SizeType           string  `json:"size_type"`
	Price              string  `json:"price" binding:"required"`
	PriceAfterDiscount *string `json:"price_after_discount"`
	IsAvailable        *bool   `json:"is_available"`
}

// ListProducts 商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:      page,
		PageSize:  pageSize,
		Title:     strings.TrimSpace(c.Query("title")),
		StoreName: strings.TrimSpace(c.Query("store_name")),
		Search:    strings.TrimSpace(c.Query("search")),
		MinPrice:  strings.TrimSpace(c.Query("min_price")),
		MaxPrice:  strings.TrimSpace(c.Query("max_price")),
		WithSizes: true,
	}
	if raw := strings.TrimSpace(c.Query("store_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.StoreID = uint(parsed)
	}
	if raw := strings.TrimSpace(c.Query("store_category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.StoreCategoryID = uint(parsed)
	}
	if c.Query("available") == "true" {
		filter.OnlyAvailable = true
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, buildPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// CreateProduct 创建商品，可同时附带初始规格
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Create(productInputFromRequest(req))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	for _, sizeReq := range req.Sizes {
		if _, err := h.ProductService.CreateSize(product.ID, sizeInputFromRequest(sizeReq)); err != nil {
			respondCatalogError(c, err)
			return
		}
	}
	product, err = h.ProductService.Get(product.ID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"product": product})
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Update(id, productInputFromRequest(req))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"product": product})
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"deleted": true})
}

// CreateProductSize 为商品新增规格
func (h *Handler) CreateProductSize(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	size, err := h.ProductService.CreateSize(productID, sizeInputFromRequest(req))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"size": size})
}

// UpdateProductSize 更新规格
func (h *Handler) UpdateProductSize(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sizeID, ok := parseIDParam(c, "size_id")
	if !ok {
		return
	}
	var req ProductSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	size, err := h.ProductService.UpdateSize(productID, sizeID, sizeInputFromRequest(req))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"size": size})
}

// DeleteProductSize 删除规格
func (h *Handler) DeleteProductSize(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sizeID, ok := parseIDParam(c, "size_id")
	if !ok {
		return
	}
	if err := h.ProductService.DeleteSize(productID, sizeID); err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"deleted": true})
}

func productInputFromRequest(req ProductRequest) service.ProductInput {
	return service.ProductInput{
		StoreID:         req.StoreID,
		StoreCategoryID: req.StoreCategoryID,
		Title:           req.Title,
		Description:     req.Description,
		Image:           req.Image,
		Available:       req.Available,
	}
}

func sizeInputFromRequest(req ProductSizeRequest) service.ProductSizeInput {
	return service.ProductSizeInput{
		SizeName:           req.SizeName,
		SizeType:           req.SizeType,
		Price:              req.Price,
		PriceAfterDiscount: req.PriceAfterDiscount,
		IsAvailable:        req.IsAvailable,
	}
}
