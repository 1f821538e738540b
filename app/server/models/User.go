package models

import "gorm.io/gorm"

type Role string

const (
	RoleGuest  Role = "guest"  // 只读
	RoleEditor Role = "editor" // 可以编辑看板
	RoleAdmin  Role = "admin"  // 可以管理用户
)

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleEditor, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	gorm.Model

	// 基础信息
	Username string `gorm:"column:username;uniqueIndex"` // 用户名，全局唯一，统一小写
	Role     Role   `gorm:"column:role;index"`           // 角色： guest / editor / admin

	// 登录认证相关
	Password string `gorm:"column:password"` // 密码，使用 argon2id 储存
}
