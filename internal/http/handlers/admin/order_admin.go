package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/repository"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderStatusRequest 订单状态更新请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemRequest 订单明细请求
type OrderItemRequest struct {
	ProductSizeID uint `json:"product_size_id" binding:"required"`
	Quantity      int  `json:"quantity" binding:"required"`
}

// OrderItemQuantityRequest 订单明细数量更新请求
type OrderItemQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ReplaceOrderItemsRequest 整单替换明细请求
type ReplaceOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
}

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if raw := strings.TrimSpace(c.Query("customer_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.CustomerID = uint(parsed)
	}
	if raw := strings.TrimSpace(c.Query("created_from")); raw != "" {
		from, err := parseDateQuery(raw, false)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.CreatedFrom = from
	}
	if raw := strings.TrimSpace(c.Query("created_to")); raw != "" {
		to, err := parseDateQuery(raw, true)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.CreatedTo = to
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, buildPagination(page, pageSize, total))
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetAdmin(id)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// UpdateOrderStatus 推进订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// DeleteOrder 删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.OrderService.DeleteAdmin(id); err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AddOrderItem 向待处理订单添加明细
func (h *Handler) AddOrderItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.AddItem(id, service.OrderItemInput{
		ProductSizeID: req.ProductSizeID,
		Quantity:      req.Quantity,
	})
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// UpdateOrderItem 更新订单明细数量（冻结单价不变）
func (h *Handler) UpdateOrderItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	var req OrderItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateItemQuantity(id, itemID, req.Quantity)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// DeleteOrderItem 移除订单明细
func (h *Handler) DeleteOrderItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	order, err := h.OrderService.RemoveItem(id, itemID)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// ReplaceOrderItems 整单替换明细，保留已有规格的冻结单价
func (h *Handler) ReplaceOrderItems(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ReplaceOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	inputs := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, service.OrderItemInput{
			ProductSizeID: item.ProductSizeID,
			Quantity:      item.Quantity,
		})
	}

	order, err := h.OrderService.ReplaceItems(id, inputs)
	if err != nil {
		respondOrderAdminError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// parseDateQuery 解析日期过滤参数，endOfDay 为 true 时取当天末尾
func parseDateQuery(raw string, endOfDay bool) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
