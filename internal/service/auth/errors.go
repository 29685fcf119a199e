package auth

import "errors"

var (
	// ErrInvalidCredentials 用户名或密码不对，对外不区分是哪个
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken 用户名已存在
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidRole 角色不在 student/teacher/admin 之内
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidToken 令牌无效、过期或已撤销
	ErrInvalidToken = errors.New("invalid or expired token")
)
