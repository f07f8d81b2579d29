package models

import "time"

// SavedItem 稍后购买（收藏）记录
type SavedItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                          // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_product" json:"user_id"`    // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_saved_user_product" json:"product_id"` // 商品ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                       // 收藏时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName 指定表名
func (SavedItem) TableName() string {
	return "saved_items"
}
