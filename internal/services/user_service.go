package services

import (
	"errors"
	"fmt"
	"rentroll/internal/models"
	"rentroll/pkg/jwt"
	"rentroll/pkg/logger"
	"time"

	"gorm.io/gorm"
)

// 用户相关的业务错误
var (
	ErrUserMissing        = errors.New("用户不存在")
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserDisabled       = errors.New("账号已被禁用")
)

// UserService 用户注册与登录
type UserService struct {
	db *gorm.DB
}

// NewUserService 创建用户服务
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register 注册新用户，角色在落库前归一化
func (s *UserService) Register(email, password, name, role string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	user := models.User{
		Email:  email,
		Name:   name,
		Role:   models.ResolveRole(role),
		Status: models.UserStatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("密码加密失败: %v", err)
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("创建用户失败: %v", err)
	}

	logger.GetLogger().Infof("新用户注册: %s (角色: %s)", user.Email, user.Role)
	return &user, nil
}

// Login 登录验证，成功后签发token并刷新最后登录时间
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", ErrInvalidCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, "", ErrUserDisabled
	}

	role := models.ResolveRole(user.Role)
	token, err := jwt.GetJWTManager().GenerateToken(user.ID, user.Email, role)
	if err != nil {
		return nil, "", fmt.Errorf("生成token失败: %v", err)
	}

	now := time.Now()
	if err := s.db.Model(&user).UpdateColumn("last_login_at", now).Error; err != nil {
		logger.GetLogger().Warnf("更新最后登录时间失败: %v", err)
	}
	user.LastLoginAt = &now

	return &user, token, nil
}

// GetByID 获取用户信息
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserMissing
		}
		return nil, err
	}
	return &user, nil
}

// ListWithPage 管理员查看用户列表（分页）
func (s *UserService) ListWithPage(page, pageSize int, role string) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := s.db.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
