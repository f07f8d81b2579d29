package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusProcessed = "processed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// 支付方式常量
const (
	PaymentMethodCreditCard     = "credit_card"
	PaymentMethodPaypal         = "paypal"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 购物车存储键
const (
	CartKeyPrefix = "cart_"
	GuestCartKey  = "guestCart"
)

// 购物车迁移策略
const (
	CartMigrationMerge     = "merge"
	CartMigrationOverwrite = "overwrite"
)

// 购物车存储后端
const (
	CartStoreBolt   = "bolt"
	CartStoreRedis  = "redis"
	CartStoreMemory = "memory"
)

// 队列常量
const (
	QueueDefault     = "default"
	QueueCritical    = "critical"
	TaskOrderPlaced  = "order:placed"
	TaskOrderUpdated = "order:status_updated"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "wm"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
)

// SupportedLocales 支持的语言（首项为回退语言）
var SupportedLocales = []string{LocaleEnUS, LocaleZhCN}
