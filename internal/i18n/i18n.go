package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 站点语言常量
const (
	LocaleEN = "en-US"
	LocaleAR = "ar-EG"
)

// DefaultLocale 回退语言
const DefaultLocale = LocaleEN

// SupportedLocales 支持的语言顺序
var SupportedLocales = []string{LocaleEN, LocaleAR}

// Normalize 归一化语言标识，未识别时回退默认语言
func Normalize(locale string) string {
	normalized := strings.TrimSpace(strings.ToLower(locale))
	switch {
	case normalized == "":
		return DefaultLocale
	case strings.HasPrefix(normalized, "ar"):
		return LocaleAR
	case strings.HasPrefix(normalized, "en"):
		return LocaleEN
	default:
		return DefaultLocale
	}
}

// ResolveLocale 解析请求语言：lang 查询参数优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return Normalize(lang)
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		return Normalize(tag)
	}
	return DefaultLocale
}

// T 按语言取消息文案，找不到时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	normalized := Normalize(locale)
	if messages, ok := catalog[normalized]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 按语言取带占位符的消息文案并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
