package media

import (
	"strings"
)

// 图片裁剪参数：列表与详情用 600x600，缩略图用 150x150
const (
	transformDisplay = "w_600,h_600,c_fit,q_auto:eco,f_auto"
	transformThumb   = "w_150,h_150,c_fit,q_auto,f_auto"
)

// Builder 拼接 CDN 图片地址
type Builder struct {
	baseURL string
}

// NewBuilder 创建图片地址构造器
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// ImageURL 返回列表/详情用图片地址
func (b *Builder) ImageURL(publicID string) string {
	return b.buildURL(transformDisplay, publicID)
}

// ThumbURL 返回缩略图地址
func (b *Builder) ThumbURL(publicID string) string {
	return b.buildURL(transformThumb, publicID)
}

func (b *Builder) buildURL(transform, publicID string) string {
	publicID = strings.TrimLeft(strings.TrimSpace(publicID), "/")
	if publicID == "" {
		return ""
	}
	// 已是完整地址时在 /upload/ 段内插入裁剪参数
	if strings.HasPrefix(publicID, "http://") || strings.HasPrefix(publicID, "https://") {
		if idx := strings.Index(publicID, "/upload/"); idx >= 0 {
			return publicID[:idx+len("/upload/")] + transform + "/" + publicID[idx+len("/upload/"):]
		}
		return publicID
	}
	if b.baseURL == "" {
		return publicID
	}
	return b.baseURL + "/" + transform + "/" + publicID
}
