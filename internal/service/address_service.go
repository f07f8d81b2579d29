package service

import (
	"strings"

	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/repository"
	"github.com/wallmasters/storefront/internal/validation"
)

// AddressService 收货地址服务
type AddressService struct {
	repo    repository.AddressRepository
	country string
}

// NewAddressService 创建地址服务，country 为固定的收货国家
func NewAddressService(repo repository.AddressRepository, country string) *AddressService {
	if strings.TrimSpace(country) == "" {
		country = "Egypt"
	}
	return &AddressService{repo: repo, country: country}
}

// AddressInput 新建地址输入
type AddressInput struct {
	Name       string
	Email      string
	MobileNo   string
	HouseNo    string
	Street     string
	City       string
	PostalCode string
	IsDefault  bool
}

// List 返回用户地址；仅有一个地址且非默认时自动设为默认并持久化
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	list, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 1 && !list[0].IsDefault {
		found, err := s.repo.SetDefault(userID, list[0].ID)
		if err != nil {
			logger.Warnw("address_auto_default_failed", "user_id", userID, "address_id", list[0].ID, "error", err)
		} else if found {
			list[0].IsDefault = true
		}
	}
	return list, nil
}

// Create 新建地址；门牌+街道+城市+邮编重复时返回 ErrAddressExists
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	addr := &models.Address{
		UserID:     userID,
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		MobileNo:   strings.TrimSpace(input.MobileNo),
		HouseNo:    strings.TrimSpace(input.HouseNo),
		Street:     strings.TrimSpace(input.Street),
		City:       strings.TrimSpace(input.City),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Country:    s.country,
	}
	if missing := validation.MissingAddressFields(validation.AddressFields{
		Name: addr.Name, Email: addr.Email, MobileNo: addr.MobileNo,
		HouseNo: addr.HouseNo, Street: addr.Street, City: addr.City,
	}); len(missing) > 0 {
		return nil, ErrAddressInvalid
	}
	if !validation.IsEmail(addr.Email) {
		return nil, ErrInvalidEmail
	}

	dup, err := s.repo.FindDuplicate(addr)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, ErrAddressExists
	}
	if err := s.repo.Create(addr); err != nil {
		return nil, err
	}
	if input.IsDefault {
		if _, err := s.repo.SetDefault(userID, addr.ID); err != nil {
			return nil, err
		}
		addr.IsDefault = true
	}
	return addr, nil
}

// Delete 删除地址
func (s *AddressService) Delete(userID, addressID uint) error {
	found, err := s.repo.Delete(addressID, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrAddressNotFound
	}
	return nil
}

// SetDefault 设置默认地址（同一事务内取消其余默认）
func (s *AddressService) SetDefault(userID, addressID uint) (*models.Address, error) {
	found, err := s.repo.SetDefault(userID, addressID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrAddressNotFound
	}
	return s.repo.GetByIDAndUser(addressID, userID)
}
