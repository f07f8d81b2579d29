// Package validation 校验顾客输入的联系方式与收货地址。
package validation

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[\w-]+(\.[\w-]+)*@([\w-]+\.)+[a-zA-Z]{2,7}$`)

// IsEmail 判断邮箱格式
func IsEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// AddressFields 地址必填项
type AddressFields struct {
	Name     string
	Email    string
	MobileNo string
	HouseNo  string
	Street   string
	City     string
}

// MissingAddressFields 返回缺失的必填字段名（邮编可选）
func MissingAddressFields(f AddressFields) []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("name", f.Name)
	check("email", f.Email)
	check("mobile_no", f.MobileNo)
	check("house_no", f.HouseNo)
	check("street", f.Street)
	check("city", f.City)
	return missing
}
