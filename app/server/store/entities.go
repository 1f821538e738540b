package store

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"slices"
	"splitboard/app/server/models"
	"strings"
)

type entity interface {
	GetID() uuid.UUID
}

func indexOf[E entity](list []E, id uuid.UUID) int {
	return slices.IndexFunc(list, func(e E) bool { return e.GetID() == id })
}

// removeByID 保留剩余项的相对顺序
func removeByID[E entity](list []E, id uuid.UUID) []E {
	return slices.DeleteFunc(list, func(e E) bool { return e.GetID() == id })
}

func requireName(name *string) (string, error) {
	if name == nil {
		return "", fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	n := strings.TrimSpace(*name)
	if n == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidRequest)
	}
	return n, nil
}

// validateCategoryRefs 确认引用的分类都属于这个看板，并去掉重复项
func validateCategoryRefs(board *models.Board, refs []uuid.UUID) ([]uuid.UUID, error) {
	res := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		if indexOf(board.Categories, ref) < 0 {
			return nil, fmt.Errorf("%w: unknown category %s", ErrInvalidRequest, ref)
		}
		if !slices.Contains(res, ref) {
			res = append(res, ref)
		}
	}
	return res, nil
}

func (b *Boards) AddCategory(ctx context.Context, boardID uint, f CategoryFields) (uuid.UUID, error) {
	name, err := requireName(f.Name)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	if err = b.mutate(ctx, boardID, func(board *models.Board) error {
		c := models.Category{ID: id, Name: name}
		if f.Order != nil {
			c.Order = *f.Order
		}
		board.Categories = append(board.Categories, c)
		return nil
	}); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (b *Boards) EditCategory(ctx context.Context, boardID uint, id uuid.UUID, f CategoryFields) error {
	return b.mutate(ctx, boardID, func(board *models.Board) error {
		i := indexOf(board.Categories, id)
		if i < 0 {
			// 找不到对应的子项时静默成功
			return nil
		}

		c := &board.Categories[i]
		if f.Name != nil {
			name, err := requireName(f.Name)
			if err != nil {
				return err
			}
			c.Name = name
		}
		if f.Order != nil {
			c.Order = *f.Order
		}
		return nil
	})
}

// DeleteCategory 同时从本看板所有成员和商品的分类列表中移除这个分类
func (b *Boards) DeleteCategory(ctx context.Context, boardID uint, id uuid.UUID) error {
	return b.mutate(ctx, boardID, func(board *models.Board) error {
		board.Categories = removeByID(board.Categories, id)
		for i := range board.Members {
			board.Members[i].Categories = pruneRef(board.Members[i].Categories, id)
		}
		for i := range board.Products {
			board.Products[i].Categories = pruneRef(board.Products[i].Categories, id)
		}
		return nil
	})
}

func pruneRef(refs []uuid.UUID, id uuid.UUID) []uuid.UUID {
	res := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		if ref != id {
			res = append(res, ref)
		}
	}
	return res
}

func (b *Boards) AddMember(ctx context.Context, boardID uint, f MemberFields) (uuid.UUID, error) {
	name, err := requireName(f.Name)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	if err = b.mutate(ctx, boardID, func(board *models.Board) error {
		m := models.Member{ID: id, Name: name, Categories: []uuid.UUID{}}
		if f.Paid != nil {
			m.Paid = *f.Paid
		}
		if f.Categories != nil {
			refs, err := validateCategoryRefs(board, *f.Categories)
			if err != nil {
				return err
			}
			m.Categories = refs
		}
		board.Members = append(board.Members, m)
		return nil
	}); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (b *Boards) EditMember(ctx context.Context, boardID uint, id uuid.UUID, f MemberFields) error {
	return b.mutate(ctx, boardID, func(board *models.Board) error {
		i := indexOf(board.Members, id)
		if i < 0 {
			return nil
		}

		m := &board.Members[i]
		if f.Name != nil {
			name, err := requireName(f.Name)
			if err != nil {
				return err
			}
			m.Name = name
		}
		if f.Paid != nil {
			m.Paid = *f.Paid
		}
		if f.Categories != nil {
			refs, err := validateCategoryRefs(board, *f.Categories)
			if err != nil {
				return err
			}
			m.Categories = refs
		}
		return nil
	})
}

func (b *Boards) DeleteMember(ctx context.Context, boardID uint, id uuid.UUID) error {
	return b.mutate(ctx, boardID, func(board *models.Board) error {
		board.Members = removeByID(board.Members, id)
		return nil
	})
}

func (b *Boards) AddProduct(ctx context.Context, boardID uint, f ProductFields) (uuid.UUID, error) {
	name, err := requireName(f.Name)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	if err = b.mutate(ctx, boardID, func(board *models.Board) error {
		p := models.Product{ID: id, Name: name, Categories: []uuid.UUID{}}
		if f.Price != nil {
			p.Price = *f.Price
		}
		if f.Categories != nil {
			refs, err := validateCategoryRefs(board, *f.Categories)
			if err != nil {
				return err
			}
			p.Categories = refs
		}
		board.Products = append(board.Products, p)
		return nil
	}); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (b *Boards) EditProduct(ctx context.Context, boardID uint, id uuid.UUID, f ProductFields) error {
	return b.mutate(ctx, boardID, func(board *models.Board) error {
		i := indexOf(board.Products, id)
		if i < 0 {
			return nil
		}

		p := &board.Products[i]
		if f.Name != nil {
			name, err := requireName(f.Name)
			if err != nil {
				return err
			}
			p.Name = name
		}
		if f.Price != nil {
			p.Price = *f.Price
		}
		if f.Categories != nil {
			refs, err := validateCategoryRefs(board, *f.Categories)
			if err != nil {
				return err
			}
			p.Categories = refs
		}
		return nil
	})
}

func (b *Boards) DeleteProduct(ctx context.Context, boardID uint, id uuid.UUID) error {
	return b.mutate(ctx, boardID, func(board *models.Board) error {
		board.Products = removeByID(board.Products, id)
		return nil
	})
}
