package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`    // 唯一标识
	Name        string         `gorm:"not null" json:"name"`                // 名称
	Description string         `gorm:"type:text" json:"description"`        // 描述
	Category    string         `gorm:"index;default:''" json:"category"`    // 分类
	Images      StringArray    `gorm:"type:json" json:"images"`             // 图片数组
	IsActive    bool           `gorm:"default:true;index" json:"is_active"` // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`   // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                          // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants"` // 尺寸规格
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductVariant 商品尺寸规格，每个尺寸独立定价
type ProductVariant struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                            // 主键
	ProductID uint      `gorm:"not null;uniqueIndex:idx_variant_product_size" json:"product_id"` // 商品ID
	Size      string    `gorm:"not null;uniqueIndex:idx_variant_product_size" json:"size"`       // 尺寸，同时作为购物车规格键
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`              // 单价
	IsActive  bool      `gorm:"default:true" json:"is_active"`                                   // 是否可售
	SortOrder int       `gorm:"default:0" json:"sort_order"`                                     // 排序权重
	CreatedAt time.Time `json:"created_at"`                                                      // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                      // 更新时间
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
