package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"splitboard/app/server/constants"
	"splitboard/app/server/models"
	"strings"
)

type UserFields struct {
	Username *string
	Password *string
	Role     *models.Role
}

type Users struct {
	db *gorm.DB
	n  Notifier
	l  *zap.Logger
}

func NewUsers(db *gorm.DB, n Notifier, l *zap.Logger) *Users {
	if n == nil {
		n = NopNotifier{}
	}
	return &Users{db: db, n: n, l: l}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// List 按创建顺序返回用户， limit 和 offset 为 -1 时返回全部
func (u *Users) List(ctx context.Context, limit int, offset int) ([]models.User, int64, error) {
	var (
		users []models.User
		count int64
	)
	if err := u.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	if err := u.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return users, count, nil
}

func (u *Users) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (u *Users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "username = ?", normalizeUsername(username)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &user, nil
}

func (u *Users) Create(ctx context.Context, username string, password string, role models.Role) (*models.User, error) {
	username = normalizeUsername(username)
	switch {
	case username == "":
		return nil, fmt.Errorf("%w: username is empty", ErrInvalidRequest)
	case username == constants.ReservedUsername:
		return nil, fmt.Errorf("%w: '%s' is reserved", ErrInvalidRequest, constants.ReservedUsername)
	case password == "":
		return nil, fmt.Errorf("%w: a password is needed", ErrInvalidRequest)
	}

	if role == "" {
		role = models.RoleGuest
	} else if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidRequest, role)
	}

	user, err := u.create(ctx, username, password, role)
	if err != nil {
		return nil, err
	}

	u.n.Broadcast(constants.ChannelUpdate)
	return user, nil
}

func (u *Users) create(ctx context.Context, username string, password string, role models.Role) (*models.User, error) {
	// 处理密码
	passwordHash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Password: passwordHash,
		Role:     role,
	}
	if err = u.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username %q already exists", ErrConflict, username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Update 只修改传入的字段；名为 admin 的用户不能被改名或降级
func (u *Users) Update(ctx context.Context, id uint, f UserFields) (*models.User, error) {
	user, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	reserved := user.Username == constants.ReservedUsername

	updates := map[string]interface{}{}

	if f.Username != nil {
		username := normalizeUsername(*f.Username)
		switch {
		case username == "":
			return nil, fmt.Errorf("%w: username is empty", ErrInvalidRequest)
		case username == user.Username:
			// 没有变化
		case reserved || username == constants.ReservedUsername:
			return nil, fmt.Errorf("%w: '%s' is reserved", ErrInvalidRequest, constants.ReservedUsername)
		default:
			updates["username"] = username
		}
	}

	if f.Role != nil && *f.Role != user.Role {
		if !f.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidRequest, *f.Role)
		}
		if reserved {
			return nil, fmt.Errorf("%w: '%s' is reserved", ErrInvalidRequest, constants.ReservedUsername)
		}
		updates["role"] = *f.Role
	}

	// 空密码视为不修改
	if f.Password != nil && *f.Password != "" {
		passwordHash, err := argon2id.CreateHash(*f.Password, argon2id.DefaultParams)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = passwordHash
	}

	if len(updates) > 0 {
		if err = u.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("%w: username already exists", ErrConflict)
			}
			return nil, fmt.Errorf("update user %d: %w", id, err)
		}
	}

	u.n.Broadcast(constants.ChannelUpdate)
	return user, nil
}

func (u *Users) Delete(ctx context.Context, id uint) error {
	user, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.Username == constants.ReservedUsername {
		return fmt.Errorf("%w: '%s' is reserved", ErrInvalidRequest, constants.ReservedUsername)
	}

	// 硬删除，释放用户名的唯一索引
	if err = u.db.WithContext(ctx).Unscoped().Delete(&models.User{}, id).Error; err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	u.n.Broadcast(constants.ChannelUpdate)
	return nil
}

// EnsureAdmin 在没有任何管理员时创建 admin 用户，密码只通过日志输出一次
func (u *Users) EnsureAdmin(ctx context.Context, defaultPassword string) error {
	var counter int64
	if err := u.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get admin count: %w", err)
	} else if counter > 0 {
		return nil
	}

	password := defaultPassword
	if password == "" {
		buf := make([]byte, constants.DefaultPasswordBytes)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		password = hex.EncodeToString(buf)
	}

	if _, err := u.create(ctx, constants.ReservedUsername, password, models.RoleAdmin); err != nil {
		if errors.Is(err, ErrConflict) {
			// 其他进程同时启动并已经创建
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	u.l.Warn("admin user created, change the password after first login",
		zap.String("username", constants.ReservedUsername),
		zap.String("password", password),
	)
	return nil
}
