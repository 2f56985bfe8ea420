package admin

import (
	"strconv"
	"strings"

	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/repository"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
)

// StoreRequest 门店创建/更新请求
type StoreRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	OpensAt     string  `json:"opens_at"`
	CloseAt     string  `json:"close_at"`
	Image       string  `json:"image"`
	MaxDiscount float64 `json:"max_discount"`
}

// ListStores 门店列表
func (h *Handler) ListStores(c *gin.Context) {
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

	stores, total, err := h.StoreService.List(repository.StoreListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Search:     strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.SuccessWithPage(c, gin.H{"stores": stores}, buildPagination(page, pageSize, total))
}

// GetStore 门店详情
func (h *Handler) GetStore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	store, err := h.StoreService.Get(id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"store": store})
}

// CreateStore 创建门店
func (h *Handler) CreateStore(c *gin.Context) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	store, err := h.StoreService.Create(storeInputFromRequest(req))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"store": store})
}

// UpdateStore 更新门店
func (h *Handler) UpdateStore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	store, err := h.StoreService.Update(id, storeInputFromRequest(req))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"store": store})
}

// DeleteStore 删除门店
func (h *Handler) DeleteStore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.StoreService.Delete(id); err != nil {
		respondCatalogError(c, err)
		return
	}
	h.invalidateCatalogCache(c)
	response.Success(c, gin.H{"deleted": true})
}

func storeInputFromRequest(req StoreRequest) service.StoreInput {
	return service.StoreInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		OpensAt:     req.OpensAt,
		CloseAt:     req.CloseAt,
		Image:       req.Image,
		MaxDiscount: req.MaxDiscount,
	}
}
