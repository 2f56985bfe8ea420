package service

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// slugCounter slug 查重回调，返回候选 slug 的占用数量
type slugCounter func(candidate string) (int64, error)

// deriveUniqueSlug 由标题派生唯一 slug：被占用时追加 -1、-2 … 直到可用
func deriveUniqueSlug(title string, count slugCounter) (string, error) {
	base := slug.Make(strings.TrimSpace(title))
	if base == "" {
		base = "product"
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		n, err := count(candidate)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}
