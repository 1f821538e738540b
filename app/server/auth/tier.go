package auth

import "splitboard/app/server/models"

type Tier int

const (
	TierPublic Tier = iota // 不需要登录
	TierGuest              // 任意已登录用户
	TierEditor             // editor 或 admin
	TierAdmin              // 仅 admin
)

func (t Tier) String() string {
	switch t {
	case TierPublic:
		return "public"
	case TierGuest:
		return "guest"
	case TierEditor:
		return "editor"
	case TierAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Allows 判断身份是否满足这一级权限， id 为 nil 表示匿名
func (t Tier) Allows(id *Identity) bool {
	if t == TierPublic {
		return true
	}
	if id == nil {
		return false
	}

	switch id.Role {
	case models.RoleAdmin:
		return true
	case models.RoleEditor:
		return t <= TierEditor
	case models.RoleGuest:
		return t <= TierGuest
	default:
		// 未知角色只当作已登录
		return t <= TierGuest
	}
}
