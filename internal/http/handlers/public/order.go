package public

import (
	"strconv"
	"strings"

	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/repository"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 购物车结算请求
type CheckoutRequest struct {
	Notes string `json:"notes"`
}

// Checkout 结算购物车生成订单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.Checkout(uid, req.Notes)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// GetMyOrders 当前用户订单列表
func (h *Handler) GetMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByCustomer(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: uid,
		Status:     strings.ToLower(strings.TrimSpace(c.Query("status"))),
	})
	if err != nil {
		respondUserOrderError(c, err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, buildPagination(page, pageSize, total))
}

// GetMyOrder 当前用户订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Get(orderID, uid)
	if err != nil {
		respondUserOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// CancelMyOrder 取消订单（仅待处理）
func (h *Handler) CancelMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.CancelByCustomer(orderID, uid)
	if err != nil {
		respondUserOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// DeleteMyOrder 删除订单（仅待处理）
func (h *Handler) DeleteMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.OrderService.DeleteByCustomer(orderID, uid); err != nil {
		respondUserOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
