package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/wallmasters/storefront/internal/storefront"
	"github.com/wallmasters/storefront/internal/validation"
)

// AddressForm 结算页地址表单
type AddressForm struct {
	Name       string
	Email      string
	MobileNo   string
	HouseNo    string
	Street     string
	City       string
	PostalCode string
	Country    string
	// SaveToBook 提交前把地址保存到地址簿
	SaveToBook bool
}

// ValidationError 表单校验失败
type ValidationError struct {
	Missing      []string
	InvalidEmail bool
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if e.InvalidEmail {
		parts = append(parts, "invalid email")
	}
	return "address invalid: " + strings.Join(parts, "; ")
}

// Unwrap 归类为 ErrValidation
func (e *ValidationError) Unwrap() error {
	return storefront.ErrValidation
}

// Validate 必填项与邮箱格式校验，邮编可选
func (f AddressForm) Validate() error {
	missing := validation.MissingAddressFields(validation.AddressFields{
		Name:     f.Name,
		Email:    f.Email,
		MobileNo: f.MobileNo,
		HouseNo:  f.HouseNo,
		Street:   f.Street,
		City:     f.City,
	})
	invalidEmail := strings.TrimSpace(f.Email) != "" && !validation.IsEmail(f.Email)
	if len(missing) == 0 && !invalidEmail {
		return nil
	}
	return &ValidationError{Missing: missing, InvalidEmail: invalidEmail}
}

func (f AddressForm) shipping() storefront.ShippingAddress {
	return storefront.ShippingAddress{
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.TrimSpace(f.Email),
		MobileNo:   strings.TrimSpace(f.MobileNo),
		HouseNo:    strings.TrimSpace(f.HouseNo),
		Street:     strings.TrimSpace(f.Street),
		City:       strings.TrimSpace(f.City),
		PostalCode: strings.TrimSpace(f.PostalCode),
		Country:    f.Country,
	}
}

func (f AddressForm) input() storefront.AddressInput {
	s := f.shipping()
	return storefront.AddressInput{
		Name:       s.Name,
		Email:      s.Email,
		MobileNo:   s.MobileNo,
		HouseNo:    s.HouseNo,
		Street:     s.Street,
		City:       s.City,
		PostalCode: s.PostalCode,
	}
}

// FormFromAddress 用已保存的地址填充表单
func FormFromAddress(addr storefront.Address, country string) AddressForm {
	return AddressForm{
		Name:       addr.Name,
		Email:      addr.Email,
		MobileNo:   addr.MobileNo,
		HouseNo:    addr.HouseNo,
		Street:     addr.Street,
		City:       addr.City,
		PostalCode: addr.PostalCode,
		Country:    country,
	}
}

// PickPrefill 默认地址优先，其次最近添加的地址；列表为空返回 false
func PickPrefill(addresses []storefront.Address) (storefront.Address, bool) {
	if len(addresses) == 0 {
		return storefront.Address{}, false
	}
	for _, addr := range addresses {
		if addr.IsDefault {
			return addr, true
		}
	}
	latest := addresses[0]
	for _, addr := range addresses[1:] {
		if !addr.CreatedAt.Before(latest.CreatedAt) {
			latest = addr
		}
	}
	return latest, true
}

// PrefillAddress 结算页初始表单：默认地址，其次最近添加的地址，否则空表单。
// 拉取失败时仍返回空表单与错误，调用方可继续让用户手填。
func (f *Flow) PrefillAddress(ctx context.Context) (AddressForm, error) {
	blank := AddressForm{Country: f.country}
	userID, ok := f.identity.Current()
	if !ok {
		return blank, nil
	}
	addresses, err := f.api.ListAddresses(ctx, userID)
	if err != nil {
		return blank, fmt.Errorf("list addresses: %w", err)
	}
	addr, ok := PickPrefill(addresses)
	if !ok {
		return blank, nil
	}
	return FormFromAddress(addr, f.country), nil
}
