package public

import (
	"github.com/dwarmarket/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductSizeID uint `json:"product_size_id" binding:"required"`
	Quantity      int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 购物车项数量调整请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车明细
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.Detail(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cart": view})
}

// AddCartItem 加入购物车（同规格合并数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.CartService.AddItem(uid, req.ProductSizeID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cart": view})
}

// UpdateCartItem 调整购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.CartService.UpdateItemQuantity(uid, itemID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cart": view})
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	view, err := h.CartService.RemoveItem(uid, itemID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cart": view})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.Clear(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cart": view})
}
