package auth

import (
	"context"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"go.uber.org/zap"
	"splitboard/app/server/jwt"
	"splitboard/app/server/models"
	"splitboard/app/server/store"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Identity 是从令牌中解析出的当前用户，角色以数据库中的为准
type Identity struct {
	UserID   uint
	Username string
	Role     models.Role
}

type Issuer struct {
	l          *zap.Logger
	users      *store.Users
	jwt        *jwt.JWT
	minLatency time.Duration
}

func NewIssuer(l *zap.Logger, users *store.Users, j *jwt.JWT, minLatency time.Duration) *Issuer {
	return &Issuer{
		l:          l,
		users:      users,
		jwt:        j,
		minLatency: minLatency,
	}
}

// Login 校验用户名和密码并签发令牌。
// 无论成功与否，每次调用都至少耗时 minLatency 。
func (i *Issuer) Login(ctx context.Context, username string, password string) (string, error) {
	deadline := time.Now().Add(i.minLatency)
	defer sleepUntil(ctx, deadline)

	// 没有写用户名或密码
	if strings.TrimSpace(username) == "" || password == "" {
		return "", fmt.Errorf("%w: cannot insert an empty value", store.ErrInvalidRequest)
	}

	user, err := i.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(password, user.Password); err != nil {
		return "", fmt.Errorf("check password: %w", err)
	} else if !match {
		return "", ErrInvalidCredentials
	}

	// 签出 JWT
	token, err := i.jwt.SignToken(&jwt.User{
		ID:   user.ID,
		Role: string(user.Role),
	})
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// Verify 解析令牌，任何失败都视为匿名，不会返回错误
func (i *Issuer) Verify(ctx context.Context, token string) (Identity, bool) {
	jwtUser, err := i.jwt.ParseUser(token)
	if err != nil {
		i.l.Debug("failed to parse token", zap.Error(err))
		return Identity{}, false
	}

	user, err := i.users.Get(ctx, jwtUser.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			i.l.Error("failed to get user", zap.Uint("id", jwtUser.ID), zap.Error(err))
		}
		return Identity{}, false
	}

	return Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, true
}

func sleepUntil(ctx context.Context, deadline time.Time) {
	d := time.Until(deadline)
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
