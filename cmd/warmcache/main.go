package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dwarmarket/internal/config"
	"github.com/dwarmarket/internal/logger"
)

// envelope 接口响应包
type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	defaultBase := fmt.Sprintf("http://%s:%s", cfg.Server.Host, cfg.Server.Port)
	var baseURL string
	flag.StringVar(&baseURL, "base-url", defaultBase, "API 服务地址")
	flag.Parse()

	if !cfg.Cache.Enabled {
		stdLog.Printf("警告: 响应缓存未开启，预热请求仍会执行但不会落缓存")
	}

	client := &http.Client{Timeout: 15 * time.Second}
	warmed := 0

	// 商圈分类
	categories := fetchList(client, baseURL, "/api/v1/public/categories", "categories", stdLog, &warmed)
	for _, id := range collectIDs(categories) {
		fetch(client, baseURL, fmt.Sprintf("/api/v1/public/categories/%d", id), stdLog, &warmed)
	}

	// 商家
	stores := fetchList(client, baseURL, "/api/v1/public/stores", "stores", stdLog, &warmed)
	for _, id := range collectIDs(stores) {
		fetch(client, baseURL, fmt.Sprintf("/api/v1/public/stores/%d", id), stdLog, &warmed)
	}

	// 店内分区
	storeCategories := fetchList(client, baseURL, "/api/v1/public/store-categories", "store_categories", stdLog, &warmed)
	for _, id := range collectIDs(storeCategories) {
		fetch(client, baseURL, fmt.Sprintf("/api/v1/public/store-categories/%d", id), stdLog, &warmed)
	}

	// 商品（列表分页首页 + 详情）
	products := fetchList(client, baseURL, "/api/v1/public/products", "products", stdLog, &warmed)
	for _, slug := range collectSlugs(products) {
		fetch(client, baseURL, "/api/v1/public/products/"+slug, stdLog, &warmed)
	}

	stdLog.Printf("缓存预热完成，共请求 %d 个接口", warmed)
}

// fetchList 请求列表接口并返回 data 中指定 key 的对象数组
func fetchList(client *http.Client, baseURL, path, key string, stdLog interface{ Printf(string, ...interface{}) }, warmed *int) []map[string]interface{} {
	body := fetch(client, baseURL, path, stdLog, warmed)
	if body == nil {
		return nil
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		stdLog.Printf("解析 %s 响应失败: %v", path, err)
		return nil
	}
	var items []map[string]interface{}
	if raw, ok := data[key]; ok {
		if err := json.Unmarshal(raw, &items); err != nil {
			stdLog.Printf("解析 %s 列表失败: %v", path, err)
			return nil
		}
	}
	return items
}

// fetch 请求单个接口，返回 data 原文
func fetch(client *http.Client, baseURL, path string, stdLog interface{ Printf(string, ...interface{}) }, warmed *int) json.RawMessage {
	resp, err := client.Get(baseURL + path)
	if err != nil {
		stdLog.Printf("请求 %s 失败: %v", path, err)
		return nil
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		stdLog.Printf("读取 %s 响应失败: %v", path, err)
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		stdLog.Printf("请求 %s 返回 %d", path, resp.StatusCode)
		return nil
	}
	*warmed++

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		stdLog.Printf("解析 %s 响应包失败: %v", path, err)
		return nil
	}
	return env.Data
}

func collectIDs(items []map[string]interface{}) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if raw, ok := item["id"].(float64); ok && raw > 0 {
			ids = append(ids, uint(raw))
		}
	}
	return ids
}

func collectSlugs(items []map[string]interface{}) []string {
	slugs := make([]string, 0, len(items))
	for _, item := range items {
		if slug, ok := item["slug"].(string); ok && slug != "" {
			slugs = append(slugs, slug)
		}
	}
	return slugs
}
