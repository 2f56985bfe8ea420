package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dwarmarket/internal/cache"
	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryView 商圈分类视图
type CategoryView struct {
	models.Category
	ImageURL string `json:"image_url"`
	ThumbURL string `json:"thumb_url"`
}

// StoreView 门店视图
type StoreView struct {
	models.Store
	ImageURL string `json:"image_url"`
	ThumbURL string `json:"thumb_url"`
}

// StoreCategoryView 店内分区视图
type StoreCategoryView struct {
	models.StoreCategory
	ImageURL string `json:"image_url"`
	ThumbURL string `json:"thumb_url"`
}

// ProductView 商品视图
type ProductView struct {
	models.Product
	MinPrice *models.Money `json:"min_price"`
	ImageURL string        `json:"image_url"`
	ThumbURL string        `json:"thumb_url"`
}

func (h *Handler) categoryView(category models.Category) CategoryView {
	return CategoryView{
		Category: category,
		ImageURL: h.Media.ImageURL(category.Image),
		ThumbURL: h.Media.ThumbURL(category.Image),
	}
}

func (h *Handler) storeView(store models.Store) StoreView {
	return StoreView{
		Store:    store,
		ImageURL: h.Media.ImageURL(store.Image),
		ThumbURL: h.Media.ThumbURL(store.Image),
	}
}

func (h *Handler) storeCategoryView(storeCategory models.StoreCategory) StoreCategoryView {
	return StoreCategoryView{
		StoreCategory: storeCategory,
		ImageURL:      h.Media.ImageURL(storeCategory.Image),
		ThumbURL:      h.Media.ThumbURL(storeCategory.Image),
	}
}

func (h *Handler) productView(product models.Product) ProductView {
	return ProductView{
		Product:  product,
		MinPrice: product.MinEffectivePrice(),
		ImageURL: h.Media.ImageURL(product.Image),
		ThumbURL: h.Media.ThumbURL(product.Image),
	}
}

func (h *Handler) listCacheTTL() time.Duration {
	return time.Duration(h.Config.Cache.ListTTLSeconds) * time.Second
}

func (h *Handler) retrieveCacheTTL() time.Duration {
	return time.Duration(h.Config.Cache.RetrieveTTLSeconds) * time.Second
}

func (h *Handler) responseCacheEnabled() bool {
	return h.Config.Cache.Enabled && cache.Enabled()
}

// respondCached 公共读接口统一缓存：命中直接返回，未命中执行 build 并按 TTL 写回。
// 缓存键为完整请求路径（含查询串），后台写操作通过前缀失效整批清除。
func (h *Handler) respondCached(c *gin.Context, ttl time.Duration, build func() (gin.H, error)) {
	key := cache.ResponseKey(c.Request.URL.RequestURI())
	if h.responseCacheEnabled() {
		var cached map[string]interface{}
		if hit, err := cache.GetJSON(c.Request.Context(), key, &cached); err == nil && hit {
			response.Success(c, cached)
			return
		}
	}

	data, err := build()
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	if h.responseCacheEnabled() {
		_ = cache.SetJSON(c.Request.Context(), key, data, ttl)
	}
	response.Success(c, data)
}

// GetCategories 商圈分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	withStores := c.Query("with_stores") == "true"
	h.respondCached(c, h.listCacheTTL(), func() (gin.H, error) {
		categories, err := h.CategoryService.List(withStores)
		if err != nil {
			return nil, err
		}
		views := make([]CategoryView, 0, len(categories))
		for _, category := range categories {
			views = append(views, h.categoryView(category))
		}
		return gin.H{"categories": views}, nil
	})
}

// GetCategory 商圈分类详情（含门店）
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.respondCached(c, h.retrieveCacheTTL(), func() (gin.H, error) {
		category, err := h.CategoryService.Get(id, true)
		if err != nil {
			return nil, err
		}
		view := h.categoryView(*category)
		stores := make([]StoreView, 0, len(category.Stores))
		for _, store := range category.Stores {
			stores = append(stores, h.storeView(store))
		}
		return gin.H{"category": view, "stores": stores}, nil
	})
}

// GetStores 门店列表
func (h *Handler) GetStores(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		categoryID = uint(parsed)
	}
	search := strings.TrimSpace(c.Query("search"))

	h.respondCached(c, h.listCacheTTL(), func() (gin.H, error) {
		stores, total, err := h.StoreService.List(repository.StoreListFilter{
			Page:       page,
			PageSize:   pageSize,
			CategoryID: categoryID,
			Search:     search,
		})
		if err != nil {
			return nil, err
		}
		views := make([]StoreView, 0, len(stores))
		for _, store := range stores {
			views = append(views, h.storeView(store))
		}
		return gin.H{
			"stores":     views,
			"pagination": buildPagination(page, pageSize, total),
		}, nil
	})
}

// GetStore 门店详情（含店内分区）
func (h *Handler) GetStore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.respondCached(c, h.retrieveCacheTTL(), func() (gin.H, error) {
		store, err := h.StoreService.Get(id)
		if err != nil {
			return nil, err
		}
		view := h.storeView(*store)
		storeCategories := make([]StoreCategoryView, 0, len(store.StoreCategories))
		for _, storeCategory := range store.StoreCategories {
			storeCategories = append(storeCategories, h.storeCategoryView(storeCategory))
		}
		return gin.H{"store": view, "store_categories": storeCategories}, nil
	})
}

// GetStoreCategories 店内分区列表
func (h *Handler) GetStoreCategories(c *gin.Context) {
	var storeID uint
	if raw := strings.TrimSpace(c.Query("store_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		storeID = uint(parsed)
	}
	h.respondCached(c, h.listCacheTTL(), func() (gin.H, error) {
		storeCategories, err := h.StoreCategoryService.List(storeID, false)
		if err != nil {
			return nil, err
		}
		views := make([]StoreCategoryView, 0, len(storeCategories))
		for _, storeCategory := range storeCategories {
			views = append(views, h.storeCategoryView(storeCategory))
		}
		return gin.H{"store_categories": views}, nil
	})
}

// GetStoreCategory 店内分区详情（含上架商品）
func (h *Handler) GetStoreCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.respondCached(c, h.retrieveCacheTTL(), func() (gin.H, error) {
		storeCategory, err := h.StoreCategoryService.Get(id, true)
		if err != nil {
			return nil, err
		}
		view := h.storeCategoryView(*storeCategory)
		products := make([]ProductView, 0, len(storeCategory.Products))
		for _, product := range storeCategory.Products {
			products = append(products, h.productView(product))
		}
		return gin.H{"store_category": view, "products": products}, nil
	})
}

// GetProducts 商品列表（仅上架商品，支持搜索与价格区间）
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		Title:         strings.TrimSpace(c.Query("title")),
		StoreName:     strings.TrimSpace(c.Query("store_name")),
		Search:        strings.TrimSpace(c.Query("search")),
		MinPrice:      strings.TrimSpace(c.Query("min_price")),
		MaxPrice:      strings.TrimSpace(c.Query("max_price")),
		OnlyAvailable: true,
		WithSizes:     true,
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

	h.respondCached(c, h.listCacheTTL(), func() (gin.H, error) {
		products, total, err := h.ProductService.List(filter)
		if err != nil {
			return nil, err
		}
		views := make([]ProductView, 0, len(products))
		for _, product := range products {
			views = append(views, h.productView(product))
		}
		return gin.H{
			"products":   views,
			"pagination": buildPagination(page, pageSize, total),
		}, nil
	})
}

// GetProduct 商品详情（按 slug，含全部规格）
func (h *Handler) GetProduct(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	h.respondCached(c, h.retrieveCacheTTL(), func() (gin.H, error) {
		product, err := h.ProductService.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		return gin.H{"product": h.productView(*product)}, nil
	})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
