package admin

import (
	"strconv"
	"strings"

	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
)

// StoreCategoryRequest 店内分区创建/更新请求
type StoreCategoryRequest struct {
	StoreID uint   `json:"store_id"`
	Name    string `json:"name" binding:"required"`
	Image   string `json:"image"`
}

// ListStoreCategories 店内分区列表
func (h *Handler) ListStoreCategories(c *gin.Context) {
	var storeID uint
	if raw := strings.TrimSpace(c.Query("store_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		storeID = uint(parsed)
	}

	storeCategories, err := h.StoreCategoryService.List(storeID, false)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"store_categories": storeCategories})
}

// GetStoreCategory 店内分区详情
func (h *Handler) GetStoreCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	storeCategory, err := h.StoreCategoryService.Get(id, true)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"store_category": storeCategory})
}

// CreateStoreCategory 创建店内分区
func (h *Handler) CreateStoreCategory(c *gin.Context) {
	var req StoreCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	storeCategory, err := h.StoreCategoryService.Create(service.StoreCategoryInput{
		StoreID: req.StoreID,
		Name:    req.Name,
		Image:   req.Image,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"store_category": storeCategory})
}

// UpdateStoreCategory 更新店内分区
func (h *Handler) UpdateStoreCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StoreCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	storeCategory, err := h.StoreCategoryService.Update(id, service.StoreCategoryInput{
		StoreID: req.StoreID,
		Name:    req.Name,
		Image:   req.Image,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"store_category": storeCategory})
}

// DeleteStoreCategory 删除店内分区
func (h *Handler) DeleteStoreCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.StoreCategoryService.Delete(id); err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"deleted": true})
}
