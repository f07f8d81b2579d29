package storefront

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/wallmasters/storefront/internal/models"
)

// ID 服务端标识，兼容数字与字符串两种 JSON 形式
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Variant 商品尺寸
type Variant struct {
	Size     string       `json:"size"`
	Price    models.Money `json:"price"`
	IsActive bool         `json:"is_active"`
}

// Product 商品
type Product struct {
	ID          ID        `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
}

// Image 首图，没有图片时为空
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// FindVariant 按尺寸查找可售规格
func (p Product) FindVariant(size string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Size == size && v.IsActive {
			return v, true
		}
	}
	return Variant{}, false
}

// ProductQuery 商品列表筛选
type ProductQuery struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// User 顾客信息
type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult 登录或注册结果
type AuthResult struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Address 收货地址
type Address struct {
	ID         ID        `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	MobileNo   string    `json:"mobile_no"`
	HouseNo    string    `json:"house_no"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// AddressInput 新建地址请求
type AddressInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	MobileNo   string `json:"mobile_no"`
	HouseNo    string `json:"house_no"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

// ShippingAddress 订单地址快照
type ShippingAddress struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	MobileNo   string `json:"mobile_no"`
	HouseNo    string `json:"house_no"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderItem 下单商品行
type OrderItem struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Size      string       `json:"size"`
	Quantity  int          `json:"quantity"`
	Price     models.Money `json:"price"`
	Image     string       `json:"image"`
}

// OrderRequest 下单请求体
type OrderRequest struct {
	UserID          string          `json:"user_id"`
	Products        []OrderItem     `json:"products"`
	TotalPrice      models.Money    `json:"total_price"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

// Order 订单
type Order struct {
	OrderID         string          `json:"order_id"`
	OrderStatus     string          `json:"order_status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"`
	Currency        string          `json:"currency"`
	Subtotal        models.Money    `json:"subtotal"`
	ShippingFee     models.Money    `json:"shipping_fee"`
	TotalPrice      models.Money    `json:"total_price"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Products        []OrderItem     `json:"products"`
	CreatedAt       time.Time       `json:"created_at"`
}
