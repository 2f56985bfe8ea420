package router

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dwarmarket/internal/authz"
	"github.com/dwarmarket/internal/cache"
	"github.com/dwarmarket/internal/config"
	"github.com/dwarmarket/internal/http/response"
	"github.com/dwarmarket/internal/i18n"
	"github.com/dwarmarket/internal/logger"
	"github.com/dwarmarket/internal/repository"
	"github.com/dwarmarket/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Accept-Language",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件
func UserJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticateUser(c, secretKey, userRepo)
		if !ok {
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("user_phone", claims.Phone)
		c.Next()
	}
}

// StaffJWTAuthMiddleware 员工 JWT 鉴权中间件，非员工一律拒绝
func StaffJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticateUser(c, secretKey, userRepo)
		if !ok {
			return
		}
		if !isStaffUser(c, userRepo, claims.UserID) {
			msg := i18n.T(i18n.ResolveLocale(c), "error.forbidden")
			response.Forbidden(c, msg)
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("staff_id", claims.UserID)
		c.Set("user_phone", claims.Phone)
		c.Next()
	}
}

// authenticateUser 校验 Bearer Token 并比对 Token 版本，失败时已写响应
func authenticateUser(c *gin.Context, secretKey string, userRepo repository.UserRepository) (*service.UserJWTClaims, bool) {
	if secretKey == "" {
		msg := i18n.T(i18n.ResolveLocale(c), "error.jwt_secret_missing")
		response.Unauthorized(c, msg)
		c.Abort()
		return nil, false
	}
	if userRepo == nil {
		msg := i18n.T(i18n.ResolveLocale(c), "error.token_invalid")
		response.Unauthorized(c, msg)
		c.Abort()
		return nil, false
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		msg := i18n.T(i18n.ResolveLocale(c), "error.auth_header_missing")
		response.Unauthorized(c, msg)
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		msg := i18n.T(i18n.ResolveLocale(c), "error.auth_header_invalid")
		response.Unauthorized(c, msg)
		c.Abort()
		return nil, false
	}

	tokenString := parts[1]
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &service.UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		msg := i18n.T(i18n.ResolveLocale(c), "error.token_invalid")
		response.Unauthorized(c, msg)
		c.Abort()
		return nil, false
	}

	if cached, hit, cacheErr := cache.GetUserAuthState(c.Request.Context(), claims.UserID); cacheErr == nil && hit && cached != nil {
		if !cached.IsActive {
			msg := i18n.T(i18n.ResolveLocale(c), "error.user_disabled")
			response.Unauthorized(c, msg)
			c.Abort()
			return nil, false
		}
		if claims.TokenVersion != cached.TokenVersion {
			msg := i18n.T(i18n.ResolveLocale(c), "error.token_revoked")
			response.Unauthorized(c, msg)
			c.Abort()
			return nil, false
		}
		return claims, true
	}

	user, err := userRepo.GetByID(claims.UserID)
	if err != nil || user == nil {
		msg := i18n.T(i18n.ResolveLocale(c), "error.token_invalid")
		response.Unauthorized(c, msg)
		c.Abort()
		return nil, false
	}
	if !user.IsActive {
		msg := i18n.T(i18n.ResolveLocale(c), "error.user_disabled")
		response.Unauthorized(c, msg)
		c.Abort()
		return nil, false
	}
	if claims.TokenVersion != user.TokenVersion {
		msg := i18n.T(i18n.ResolveLocale(c), "error.token_revoked")
		response.Unauthorized(c, msg)
		c.Abort()
		return nil, false
	}
	_ = cache.SetUserAuthState(c.Request.Context(), cache.BuildUserAuthState(user))

	return claims, true
}

// isStaffUser 员工标记以当前数据为准，Token 签发后被收回也即时生效
func isStaffUser(c *gin.Context, userRepo repository.UserRepository, userID uint) bool {
	if cached, hit, err := cache.GetUserAuthState(c.Request.Context(), userID); err == nil && hit && cached != nil {
		return cached.IsStaff
	}
	user, err := userRepo.GetByID(userID)
	if err != nil || user == nil {
		return false
	}
	return user.IsStaff
}

// StaffRBACMiddleware 员工 RBAC 鉴权中间件
func StaffRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("staff_rbac_service_unavailable")
			msg := i18n.T(i18n.ResolveLocale(c), "error.unauthorized")
			response.Unauthorized(c, msg)
			c.Abort()
			return
		}

		staffIDRaw, exists := c.Get("staff_id")
		if !exists {
			msg := i18n.T(i18n.ResolveLocale(c), "error.unauthorized")
			response.Unauthorized(c, msg)
			c.Abort()
			return
		}

		var staffID uint
		switch value := staffIDRaw.(type) {
		case uint:
			staffID = value
		case int:
			if value > 0 {
				staffID = uint(value)
			}
		case float64:
			if value > 0 {
				staffID = uint(value)
			}
		}
		if staffID == 0 {
			msg := i18n.T(i18n.ResolveLocale(c), "error.unauthorized")
			response.Unauthorized(c, msg)
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceStaff(staffID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("staff_rbac_enforce_failed",
				"staff_id", staffID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			msg := i18n.T(i18n.ResolveLocale(c), "error.unauthorized")
			response.Unauthorized(c, msg)
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("staff_rbac_permission_denied",
				"staff_id", staffID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			msg := i18n.T(i18n.ResolveLocale(c), "error.forbidden")
			response.Forbidden(c, msg)
			c.Abort()
			return
		}

		c.Next()
	}
}
