package repository

import (
	"gorm.io/gorm"

	"github.com/divyanshudobhal/learn-x/internal/model"
)

// userGormRepository 用户与令牌仓库
// 用户账号始终存在关系库中，不参与元数据后端切换
type userGormRepository struct {
	db *gorm.DB
}

// NewUserGormRepository 创建用户仓库
func NewUserGormRepository(db *gorm.DB) UserRepository {
	return &userGormRepository{db: db}
}

// CreateUser 创建用户
func (r *userGormRepository) CreateUser(user *model.User) error {
	return r.db.Create(user).Error
}

// GetUserByID 根据ID获取用户
func (r *userGormRepository) GetUserByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername 根据用户名获取用户
func (r *userGormRepository) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers 列出所有用户
func (r *userGormRepository) ListUsers() ([]*model.User, error) {
	var users []*model.User
	if err := r.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateToken 保存令牌
func (r *userGormRepository) CreateToken(token *model.AuthToken) error {
	return r.db.Create(token).Error
}

// GetTokenByValue 根据令牌内容查找记录
func (r *userGormRepository) GetTokenByValue(token string) (*model.AuthToken, error) {
	var record model.AuthToken
	if err := r.db.Where("token = ?", token).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// RevokeToken 撤销令牌
func (r *userGormRepository) RevokeToken(id string) error {
	return r.db.Model(&model.AuthToken{}).
		Where("id = ?", id).
		Update("is_revoked", true).Error
}
