package repository

import (
	"errors"

	"github.com/wallmasters/storefront/internal/models"

	"gorm.io/gorm"
)

// SavedItemRepository 稍后购买数据访问接口
type SavedItemRepository interface {
	ListByUser(userID uint) ([]models.SavedItem, error)
	Get(userID, productID uint) (*models.SavedItem, error)
	Create(item *models.SavedItem) error
	Delete(userID, productID uint) (bool, error)
}

// GormSavedItemRepository GORM 实现
type GormSavedItemRepository struct {
	db *gorm.DB
}

// NewSavedItemRepository 创建收藏仓库
func NewSavedItemRepository(db *gorm.DB) *GormSavedItemRepository {
	return &GormSavedItemRepository{db: db}
}

// ListByUser 获取用户收藏（最新优先，含商品与规格）
func (r *GormSavedItemRepository) ListByUser(userID uint) ([]models.SavedItem, error) {
	var items []models.SavedItem
	err := r.db.Preload("Product").Preload("Product.Variants").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Get 查询单条收藏
func (r *GormSavedItemRepository) Get(userID, productID uint) (*models.SavedItem, error) {
	var item models.SavedItem
	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 创建收藏
func (r *GormSavedItemRepository) Create(item *models.SavedItem) error {
	return r.db.Create(item).Error
}

// Delete 删除收藏
func (r *GormSavedItemRepository) Delete(userID, productID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.SavedItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
