package jwt

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"strconv"
	"time"
)

type JWT struct {
	key []byte
	ttl time.Duration // 0 表示不设置过期时间
}

type User struct {
	ID   uint
	Role string
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func New(key string, ttl time.Duration) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key), ttl: ttl}, nil
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	// 只接受 HS256 ，避免 alg 被替换
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// 匹配内容
	if c.Subject == "" {
		return nil, errors.New("missing subject")
	}
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject %q: %w", c.Subject, err)
	}

	return &User{
		ID:   uint(id),
		Role: c.Role,
	}, nil
}

func (j *JWT) SignToken(user *User) (string, error) {
	now := time.Now()

	// 创建声明
	c := claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(j.ttl))
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	// 签名并返回
	return token.SignedString(j.key)
}
