package models

import "time"

// OrderItem 订单商品快照
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"-"`                                // 主键
	OrderID   uint      `gorm:"index;not null" json:"-"`                            // 订单ID
	ProductID string    `gorm:"index;not null" json:"product_id"`                   // 商品ID（不透明字符串）
	Name      string    `gorm:"not null" json:"name"`                               // 商品名称快照
	Size      string    `gorm:"not null" json:"size"`                               // 尺寸
	Quantity  int       `gorm:"not null" json:"quantity"`                           // 数量
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 加购时单价
	Image     string    `gorm:"type:varchar(500)" json:"image"`                     // 图片
	CreatedAt time.Time `json:"-"`                                                  // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
