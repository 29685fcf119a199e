// Package auth 认证服务：注册、登录、JWT 签发与校验
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/divyanshudobhal/learn-x/internal/model"
	"github.com/divyanshudobhal/learn-x/internal/repository"
)

var (
	jwtSecretOnce sync.Once
	jwtSecret     string
)

// getJwtSecret 获取 JWT 密钥
// 优先用 JWT_SECRET 环境变量，否则进程内随机生成（重启后旧 token 全部失效）
func getJwtSecret() string {
	jwtSecretOnce.Do(func() {
		if envSecret := strings.TrimSpace(os.Getenv("JWT_SECRET")); envSecret != "" {
			jwtSecret = envSecret
			return
		}

		randomBytes := make([]byte, 32)
		if _, err := rand.Read(randomBytes); err != nil {
			panic(fmt.Sprintf("failed to generate JWT secret: %v", err))
		}
		jwtSecret = base64.StdEncoding.EncodeToString(randomBytes)
	})

	return jwtSecret
}

// Service 认证服务
type Service struct {
	users repository.UserRepository
}

// NewService 创建认证服务
func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         *model.UserInfo `json:"user"`
	Token        string          `json:"token"`
	RefreshToken string          `json:"refresh_token"`
}

// Register 注册用户
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*model.UserInfo, error) {
	if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	existing, _ := s.users.GetUserByUsername(req.Username)
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
		CreatedAt:    time.Now(),
	}

	if err := s.users.CreateUser(user); err != nil {
		// 并发注册可能绕过上面的查询，由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user.ToUserInfo(), nil
}

// Login 用户登录
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetUserByUsername(req.Username)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.generateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &LoginResponse{
		User:         user.ToUserInfo(),
		Token:        accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateToken 验证访问令牌并返回其用户
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != "access" {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	// 检查令牌是否被撤销
	tokenRecord, err := s.users.GetTokenByValue(tokenString)
	if err != nil || tokenRecord == nil || tokenRecord.IsRevoked {
		return nil, ErrInvalidToken
	}

	return s.users.GetUserByID(userID)
}

// RefreshToken 用刷新令牌换一对新令牌，旧刷新令牌作废
func (s *Service) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	claims, err := s.parseToken(refreshTokenString)
	if err != nil {
		return "", "", err
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != "refresh" {
		return "", "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", ErrInvalidToken
	}

	tokenRecord, err := s.users.GetTokenByValue(refreshTokenString)
	if err != nil || tokenRecord == nil || tokenRecord.IsRevoked {
		return "", "", ErrInvalidToken
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return "", "", err
	}

	_ = s.users.RevokeToken(tokenRecord.ID)

	return s.generateTokens(user)
}

// RevokeToken 撤销一个令牌（登出）
func (s *Service) RevokeToken(ctx context.Context, tokenString string) error {
	tokenRecord, err := s.users.GetTokenByValue(tokenString)
	if err != nil {
		return err
	}
	if tokenRecord == nil {
		return nil
	}
	return s.users.RevokeToken(tokenRecord.ID)
}

// ListUsers 返回全部用户（不含密码哈希）
func (s *Service) ListUsers(ctx context.Context) ([]*model.UserInfo, error) {
	users, err := s.users.ListUsers()
	if err != nil {
		return nil, err
	}
	infos := make([]*model.UserInfo, len(users))
	for i, u := range users {
		infos[i] = u.ToUserInfo()
	}
	return infos, nil
}

// parseToken 解析并校验 JWT 签名
func (s *Service) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(getJwtSecret()), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// generateTokens 签发访问令牌（24小时）和刷新令牌（7天）并入库
func (s *Service) generateTokens(user *model.User) (string, string, error) {
	now := time.Now()

	// jti 保证同一秒内给同一用户签发的令牌也互不相同，
	// 否则撤销旧令牌后再签发会复活同一串
	accessClaims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"jti":      uuid.New().String(),
		"exp":      now.Add(24 * time.Hour).Unix(),
		"iat":      now.Unix(),
		"type":     "access",
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(getJwtSecret()))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"user_id": user.ID,
		"jti":     uuid.New().String(),
		"exp":     now.Add(7 * 24 * time.Hour).Unix(),
		"iat":     now.Unix(),
		"type":    "refresh",
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(getJwtSecret()))
	if err != nil {
		return "", "", err
	}

	accessRecord := &model.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     accessToken,
		TokenType: "access_token",
		ExpiresAt: now.Add(24 * time.Hour),
		CreatedAt: now,
	}
	refreshRecord := &model.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     refreshToken,
		TokenType: "refresh_token",
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		CreatedAt: now,
	}

	if err := s.users.CreateToken(accessRecord); err != nil {
		return "", "", err
	}
	if err := s.users.CreateToken(refreshRecord); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
