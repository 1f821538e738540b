package types

import (
	"github.com/google/uuid"
	"splitboard/app/server/models"
)

// 请求体，所有字段都是可选的，未传入的字段不修改

type BoardInput struct {
	Name *string `json:"name"`
}

type CategoryInput struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

type MemberInput struct {
	Name       *string      `json:"name"`
	Paid       *float64     `json:"paid"`
	Categories *[]uuid.UUID `json:"categories"`
}

type ProductInput struct {
	Name       *string      `json:"name"`
	Price      *float64     `json:"price"`
	Categories *[]uuid.UUID `json:"categories"`
}

type UserInput struct {
	Username *string      `json:"username"`
	Password *string      `json:"password"`
	Role     *models.Role `json:"role"`
}

// 登录使用表单提交
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// 响应体

type ErrorMessage struct {
	Message string `json:"message"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type LoginToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type BoardInfo struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	Categories []models.Category `json:"categories"`
	Members    []models.Member   `json:"members"`
	Products   []models.Product  `json:"products"`
}

type UserInfo struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}
