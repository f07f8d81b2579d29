package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_id"`                      // 订单编号（对外展示）
	UserID        uint           `gorm:"index;not null" json:"user_id"`                             // 下单用户
	OrderStatus   string         `gorm:"index;not null" json:"order_status"`                        // 订单状态
	PaymentStatus string         `gorm:"index;not null" json:"payment_status"`                      // 支付状态
	PaymentMethod string         `gorm:"not null" json:"payment_method"`                            // 支付方式
	Currency      string         `gorm:"not null" json:"currency"`                                  // 币种
	Subtotal      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`     // 商品小计
	ShippingFee   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"` // 运费
	TotalPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`  // 应付总额
	ClientTotal   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"-"`            // 客户端提交的总额（对账用）
	ClientIP      string         `gorm:"type:varchar(64)" json:"-"`                                 // 下单客户端IP
	CanceledAt    *time.Time     `gorm:"index" json:"canceled_at,omitempty"`                        // 取消时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"` // 收货地址快照
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"products"`                    // 订单商品
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// ShippingAddress 订单收货地址快照
type ShippingAddress struct {
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"not null" json:"email"`
	MobileNo   string `gorm:"not null" json:"mobile_no"`
	HouseNo    string `gorm:"not null" json:"house_no"`
	Street     string `gorm:"not null" json:"street"`
	City       string `gorm:"not null" json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
