package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page            int
	PageSize        int
	StoreID         uint
	StoreCategoryID uint
	Title           string
	StoreName       string
	Search          string
	MinPrice        string
	MaxPrice        string
	OnlyAvailable   bool
	WithSizes       bool
}

// StoreListFilter 查询商家列表的过滤条件
type StoreListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Staff    *bool
}
