package admin

import (
	"errors"

	handlershared "github.com/dwarmarket/internal/http/handlers/shared"
	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// mappedHandlerError 业务错误到接口错误响应的映射
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, "error.internal_error", err)
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrCategoryNameExists, code: response.CodeConflict, key: "error.category_name_exists"},
	{target: service.ErrCategoryInUse, code: response.CodeConflict, key: "error.category_in_use"},
	{target: service.ErrStoreNameExists, code: response.CodeConflict, key: "error.store_name_exists"},
	{target: service.ErrStoreInUse, code: response.CodeConflict, key: "error.store_in_use"},
	{target: service.ErrStoreCategoryExists, code: response.CodeConflict, key: "error.store_category_exists"},
	{target: service.ErrSlugExists, code: response.CodeConflict, key: "error.slug_exists"},
	{target: service.ErrDiscountAbovePrice, code: response.CodeBadRequest, key: "error.discount_above_price"},
	{target: service.ErrProductInOrders, code: response.CodeConflict, key: "error.product_in_orders"},
	{target: service.ErrSizeInOrders, code: response.CodeConflict, key: "error.size_in_orders"},
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderNotPending, code: response.CodeBadRequest, key: "error.order_not_pending"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrOrderStatusTransition, code: response.CodeBadRequest, key: "error.order_status_transition"},
	{target: service.ErrOrderItemNotFound, code: response.CodeNotFound, key: "error.order_item_not_found"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_unavailable"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.validation_failed"},
}

func respondCatalogError(c *gin.Context, err error) {
	respondWithMappedError(c, err, catalogErrorRules)
}

func respondOrderAdminError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderAdminErrorRules)
}
