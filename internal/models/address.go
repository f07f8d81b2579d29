package models

import "time"

// Address 收货地址表
type Address struct {
	ID         uint      `gorm:"primarykey" json:"id"`                           // 主键
	UserID     uint      `gorm:"not null;index" json:"user_id"`                  // 所属用户
	Name       string    `gorm:"not null" json:"name"`                           // 收件人
	Email      string    `gorm:"not null" json:"email"`                          // 联系邮箱
	MobileNo   string    `gorm:"not null" json:"mobile_no"`                      // 手机号
	HouseNo    string    `gorm:"not null" json:"house_no"`                       // 门牌/楼号
	Street     string    `gorm:"not null" json:"street"`                         // 街道
	City       string    `gorm:"not null" json:"city"`                           // 城市
	PostalCode string    `gorm:"default:''" json:"postal_code"`                  // 邮编（可选）
	Country    string    `gorm:"not null" json:"country"`                        // 国家（固定值）
	IsDefault  bool      `gorm:"not null;default:false;index" json:"is_default"` // 是否默认地址
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                     // 更新时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
