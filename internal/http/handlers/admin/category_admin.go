package admin

import (
	"github.com/dwarmarket/internal/cache"
	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// invalidateCatalogCache 后台写操作后清空公共响应缓存
func (h *Handler) invalidateCatalogCache(c *gin.Context) {
	if err := cache.InvalidateResponses(c.Request.Context()); err != nil {
		requestLog(c).Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	withStores := c.Query("with_stores") == "true"
	categories, err := h.CategoryService.List(withStores)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.CategoryService.Get(id, true)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"category": category})
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Create(service.CategoryInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"category": category})
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Update(id, service.CategoryInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"category": category})
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"deleted": true})
}
