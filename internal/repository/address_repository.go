package repository

import (
	"errors"

	"github.com/wallmasters/storefront/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	ListByUser(userID uint) ([]models.Address, error)
	GetByIDAndUser(id, userID uint) (*models.Address, error)
	FindDuplicate(addr *models.Address) (*models.Address, error)
	Create(addr *models.Address) error
	Delete(id, userID uint) (bool, error)
	SetDefault(userID, addressID uint) (bool, error)
	WithTx(tx *gorm.DB) *GormAddressRepository
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) *GormAddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// ListByUser 按添加顺序返回用户全部地址
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	var list []models.Address
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// GetByIDAndUser 获取属于用户的地址
func (r *GormAddressRepository) GetByIDAndUser(id, userID uint) (*models.Address, error) {
	var addr models.Address
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &addr, nil
}

// FindDuplicate 按 门牌+街道+城市+邮编 查找重复地址
func (r *GormAddressRepository) FindDuplicate(addr *models.Address) (*models.Address, error) {
	if addr == nil {
		return nil, nil
	}
	var existing models.Address
	err := r.db.Where(
		"user_id = ? AND house_no = ? AND street = ? AND city = ? AND postal_code = ?",
		addr.UserID, addr.HouseNo, addr.Street, addr.City, addr.PostalCode,
	).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// Create 创建地址
func (r *GormAddressRepository) Create(addr *models.Address) error {
	return r.db.Create(addr).Error
}

// Delete 删除地址，返回是否存在
func (r *GormAddressRepository) Delete(id, userID uint) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetDefault 在同一事务内取消其他默认地址并设置目标地址，返回目标是否存在
func (r *GormAddressRepository) SetDefault(userID, addressID uint) (bool, error) {
	found := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var target models.Address
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND id <> ? AND is_default = ?", userID, addressID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&target).Update("is_default", true).Error
	})
	return found, err
}
