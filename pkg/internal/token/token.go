// Package token 负责 JWT 令牌对的签发、校验与刷新令牌吊销.
//
// 访问令牌短期有效，携带账户身份与角色；刷新令牌长期有效，登出时按 jti
// 写入 KV 黑名单，TTL 与令牌剩余有效期一致，到期后自动清理.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yeisme/ecolevault/pkg/configs"
	"github.com/yeisme/ecolevault/pkg/internal/storage/kv"
)

const (
	// TokenTypeAccess 访问令牌类型标识.
	TokenTypeAccess = "access"
	// TokenTypeRefresh 刷新令牌类型标识.
	TokenTypeRefresh = "refresh"

	// denylistPrefix 黑名单键前缀，值无意义，仅看键是否存在.
	denylistPrefix = "auth:denylist:"
)

var (
	// ErrInvalidToken 令牌无法解析、签名不符或类型不匹配.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenRevoked 刷新令牌已被吊销.
	ErrTokenRevoked = errors.New("token revoked")
)

// Claims 自定义 JWT 载荷，嵌入标准注册字段.
type Claims struct {
	UserID    uint   `json:"uid"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	IsStaff   bool   `json:"is_staff"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair 一次签发的访问/刷新令牌对.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Subject 签发令牌所需的账户身份信息.
type Subject struct {
	UserID   uint
	Username string
	Role     string
	IsStaff  bool
}

// Manager 管理令牌签发与吊销，黑名单落在 KV 存储.
type Manager struct {
	cfg *configs.AuthConfig
	kv  kv.Store
}

// NewManager 创建令牌管理器.
func NewManager(cfg *configs.AuthConfig, store kv.Store) *Manager {
	return &Manager{cfg: cfg, kv: store}
}

// IssuePair 为账户签发访问/刷新令牌对.
func (m *Manager) IssuePair(sub Subject) (Pair, error) {
	access, err := m.issue(sub, TokenTypeAccess, m.cfg.AccessTTL())
	if err != nil {
		return Pair{}, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := m.issue(sub, TokenTypeRefresh, m.cfg.RefreshTTL())
	if err != nil {
		return Pair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	return Pair{Access: access, Refresh: refresh}, nil
}

func (m *Manager) issue(sub Subject, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    sub.UserID,
		Username:  sub.Username,
		Role:      sub.Role,
		IsStaff:   sub.IsStaff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   sub.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return tok.SignedString([]byte(m.cfg.Secret))
}

// parse 解析并校验令牌签名与类型.
func (m *Manager) parse(raw, wantType string) (*Claims, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(m.cfg.Secret), nil
	}, jwt.WithIssuer(m.cfg.Issuer))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ParseAccess 校验访问令牌并返回载荷.
func (m *Manager) ParseAccess(raw string) (*Claims, error) {
	return m.parse(raw, TokenTypeAccess)
}

// ParseRefresh 校验刷新令牌并检查黑名单.
func (m *Manager) ParseRefresh(ctx context.Context, raw string) (*Claims, error) {
	claims, err := m.parse(raw, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	revoked, err := m.kv.Exists(ctx, denylistPrefix+claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check denylist: %w", err)
	}

	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// RevokeRefresh 吊销刷新令牌：按 jti 写入黑名单，TTL 取令牌剩余有效期.
// 已吊销或无效的令牌返回错误，调用方决定如何向客户端呈现.
func (m *Manager) RevokeRefresh(ctx context.Context, raw string) error {
	claims, err := m.ParseRefresh(ctx, raw)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return ErrInvalidToken
	}

	if err := m.kv.Set(ctx, denylistPrefix+claims.ID, []byte("1"), ttl); err != nil {
		return fmt.Errorf("denylist refresh token: %w", err)
	}

	return nil
}
