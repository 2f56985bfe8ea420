package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// OrderStatuses 全部合法订单状态
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

// 商品规格计量方式常量
const (
	SizeTypeWeight = "weight"
	SizeTypePiece  = "piece"
	SizeTypeVolume = "volume"
)

// 队列常量
const (
	QueueDefault         = "default"
	QueueCritical        = "critical"
	TaskOrderStatusEmail = "order:status_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "dwm"
)

// 币种常量
const (
	SiteCurrencyDefault = "EGP"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleArEG = "ar-EG"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleArEG}

// 分页默认值常量
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)
