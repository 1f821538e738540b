package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board 是看板的聚合根，三个子列表直接以 JSON 形式存在同一行里，
// 所以对子项的任何修改都只需要锁住这一行。
type Board struct {
	gorm.Model

	Name string `gorm:"column:name"` // 看板名称

	Categories []Category `gorm:"column:categories;serializer:json"` // 分类（按插入顺序）
	Members    []Member   `gorm:"column:members;serializer:json"`    // 成员（按插入顺序）
	Products   []Product  `gorm:"column:products;serializer:json"`   // 商品（按插入顺序）
}

type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Order int       `json:"order"` // 只做展示用的排序提示，服务端不排序
}

type Member struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Paid       float64     `json:"paid"`
	Categories []uuid.UUID `json:"categories"` // 关联的分类 ID
}

type Product struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Price      float64     `json:"price"`
	Categories []uuid.UUID `json:"categories"` // 关联的分类 ID
}

func (c Category) GetID() uuid.UUID { return c.ID }
func (m Member) GetID() uuid.UUID   { return m.ID }
func (p Product) GetID() uuid.UUID  { return p.ID }
