package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yeisme/ecolevault/pkg/apperr"
	"github.com/yeisme/ecolevault/pkg/configs"
	ctxPkg "github.com/yeisme/ecolevault/pkg/context"
	"github.com/yeisme/ecolevault/pkg/internal/model"
	"github.com/yeisme/ecolevault/pkg/internal/storage/db"
	"github.com/yeisme/ecolevault/pkg/internal/storage/mq"
	"github.com/yeisme/ecolevault/pkg/internal/token"
	"github.com/yeisme/ecolevault/pkg/internal/types"
	"github.com/yeisme/ecolevault/pkg/log"
	"github.com/yeisme/ecolevault/pkg/queue"
)

// AuthService 账户注册、登录与登出.
type AuthService struct {
	dbClient *db.Client
	mqClient *mq.Client
	tokens   *token.Manager
	authCfg  *configs.AuthConfig
}

// NewAuthService 从请求上下文取存储句柄并构建服务.
func NewAuthService(c context.Context) *AuthService {
	return &AuthService{
		dbClient: ctxPkg.GetDBClient(c),
		mqClient: ctxPkg.GetMQClient(c),
		tokens:   token.NewManager(&configs.GetConfig().Auth, ctxPkg.GetKVStore(c)),
		authCfg:  &configs.GetConfig().Auth,
	}
}

// Register 创建账户：校验口令规则、用户名唯一性，散列后入库.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) error {
	if err := ValidatePassword(s.authCfg, req.Username, req.Password); err != nil {
		return err
	}

	var count int64
	if err := s.dbClient.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return apperr.ValidationFields("invalid registration", map[string]string{
			"username": "a user with that username already exists",
		})
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.dbClient.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}

	s.publishRegistered(&user)

	return nil
}

// Login 校验凭据并签发令牌对. 凭据不符一律返回认证错误，不区分用户不存在与口令错误.
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	var user model.User

	err := s.dbClient.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Authentication("invalid credentials")
	}

	if err != nil {
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperr.Authentication("invalid credentials")
	}

	pair, err := s.tokens.IssuePair(token.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsStaff:  user.IsStaff,
	})
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{
		Refresh:  pair.Refresh,
		Access:   pair.Access,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// Logout 吊销刷新令牌. 缺失、畸形、过期或已吊销的令牌统一返回同一个校验错误，
// 不向客户端泄露具体失败原因.
func (s *AuthService) Logout(ctx context.Context, refresh string) error {
	if refresh == "" {
		return apperr.Validation("missing token")
	}

	if err := s.tokens.RevokeRefresh(ctx, refresh); err != nil {
		return apperr.Validation("invalid or already used token")
	}

	return nil
}

// Tokens 暴露令牌管理器，认证中间件复用同一实例配置.
func (s *AuthService) Tokens() *token.Manager {
	return s.tokens
}

func (s *AuthService) publishRegistered(user *model.User) {
	if s.mqClient == nil {
		return
	}

	payload := queue.AccountRegisteredPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	if err := queue.PublishAccountRegistered(s.mqClient.Publisher(), payload,
		queue.WithProducer("ecolevault")); err != nil {
		log.Logger().Warn().Err(err).Msg("publish account registered event failed")
	}
}
