package service

import (
	"strings"

	"github.com/dwarmarket/internal/constants"
)

// allowedTransitions 订单状态机：只允许向前流转或在终态前取消
var allowedTransitions = map[string][]string{
	constants.OrderStatusPending:   {constants.OrderStatusAccepted, constants.OrderStatusCanceled},
	constants.OrderStatusAccepted:  {constants.OrderStatusShipped, constants.OrderStatusCanceled},
	constants.OrderStatusShipped:   {constants.OrderStatusDelivered},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCanceled:  {},
}

// normalizeOrderStatus 规范化状态值，未知状态返回空串
func normalizeOrderStatus(status string) string {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if _, ok := allowedTransitions[normalized]; !ok {
		return ""
	}
	return normalized
}

// canTransitionOrderStatus 判断状态流转是否合法
func canTransitionOrderStatus(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
