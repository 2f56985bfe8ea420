package cache

import (
	"context"
)

const responseKeyPrefix = "resp:"

// ResponseKey 公共接口响应缓存键（按完整请求路径区分，含查询串）
func ResponseKey(fullPath string) string {
	return responseKeyPrefix + fullPath
}

// InvalidateResponses 清空公共接口响应缓存（后台写操作后调用）
func InvalidateResponses(ctx context.Context) error {
	return DelByPrefix(ctx, responseKeyPrefix)
}
