package public

import (
	"errors"

	handlershared "github.com/dwarmarket/internal/http/handlers/shared"
	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/i18n"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// respondPasswordError 密码策略错误携带具体规则文案
func respondPasswordError(c *gin.Context, err error) bool {
	if !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	var policyErr interface {
		Key() string
		Args() []interface{}
	}
	if errors.As(err, &policyErr) {
		locale := i18n.ResolveLocale(c)
		msg := i18n.Sprintf(locale, policyErr.Key(), policyErr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return true
	}
	respondError(c, response.CodeBadRequest, "error.weak_password", nil)
	return true
}
