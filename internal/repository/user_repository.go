package repository

import (
	"strings"
	"time"

	"github.com/wallmasters/storefront/internal/models"

	"gorm.io/gorm"
)

// UserRepository 顾客账号读写
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	EmailTaken(email string) (bool, error)
	Create(user *models.User) error
	RecordLogin(id uint, at time.Time) error
	// ReplacePassword 写入新哈希并递增 token_version，返回新版本号
	ReplacePassword(id uint, hash string) (uint64, error)
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建顾客仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// 邮箱统一按小写比较，历史数据里大小写混写也能命中
func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByEmail 按邮箱查找顾客
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	return firstOrNil[models.User](r.db.Where("LOWER(email) = ?", emailKey(email)))
}

// GetByID 按 ID 查找顾客
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return firstOrNil[models.User](r.db, id)
}

// EmailTaken 邮箱是否已注册（含软删除账号，唯一索引不区分）
func (r *GormUserRepository) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Unscoped().Model(&models.User{}).
		Where("LOWER(email) = ?", emailKey(email)).
		Count(&count).Error
	return count > 0, err
}

// Create 新建顾客，邮箱落库前归一化
func (r *GormUserRepository) Create(user *models.User) error {
	user.Email = emailKey(user.Email)
	return r.db.Create(user).Error
}

// RecordLogin 只更新最后登录时间，不触碰 updated_at
func (r *GormUserRepository) RecordLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login_at", at).Error
}

// ReplacePassword 修改密码并让旧 Token 失效
func (r *GormUserRepository) ReplacePassword(id uint, hash string) (uint64, error) {
	var version uint64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
			"password_hash": hash,
			"token_version": gorm.Expr("token_version + 1"),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.User{}).Where("id = ?", id).Pluck("token_version", &version).Error
	})
	return version, err
}
