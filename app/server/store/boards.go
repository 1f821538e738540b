package store

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"splitboard/app/server/constants"
	"splitboard/app/server/models"
	"strings"
)

type BoardFields struct {
	Name *string
}

type CategoryFields struct {
	Name  *string
	Order *int
}

type MemberFields struct {
	Name       *string
	Paid       *float64
	Categories *[]uuid.UUID
}

type ProductFields struct {
	Name       *string
	Price      *float64
	Categories *[]uuid.UUID
}

type Boards struct {
	db *gorm.DB
	n  Notifier
}

func NewBoards(db *gorm.DB, n Notifier) *Boards {
	if n == nil {
		n = NopNotifier{}
	}
	return &Boards{db: db, n: n}
}

// List 按创建顺序返回看板， limit 和 offset 为 -1 时返回全部
func (b *Boards) List(ctx context.Context, limit int, offset int) ([]models.Board, int64, error) {
	var (
		boards []models.Board
		count  int64
	)
	if err := b.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset).Find(&boards).Error; err != nil {
		return nil, 0, fmt.Errorf("list boards: %w", err)
	}
	if err := b.db.WithContext(ctx).Model(&models.Board{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count boards: %w", err)
	}
	return boards, count, nil
}

func (b *Boards) Get(ctx context.Context, id uint) (*models.Board, error) {
	var board models.Board
	if err := b.db.WithContext(ctx).First(&board, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get board %d: %w", id, err)
	}
	return &board, nil
}

func (b *Boards) Categories(ctx context.Context, id uint) ([]models.Category, error) {
	board, err := b.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return board.Categories, nil
}

func (b *Boards) Members(ctx context.Context, id uint) ([]models.Member, error) {
	board, err := b.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return board.Members, nil
}

func (b *Boards) Products(ctx context.Context, id uint) ([]models.Product, error) {
	board, err := b.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return board.Products, nil
}

func (b *Boards) Create(ctx context.Context, name string) (*models.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: board name is empty", ErrInvalidRequest)
	}

	board := models.Board{
		Name:       name,
		Categories: []models.Category{},
		Members:    []models.Member{},
		Products:   []models.Product{},
	}
	if err := b.db.WithContext(ctx).Create(&board).Error; err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	b.n.Broadcast(constants.ChannelUpdate)
	return &board, nil
}

func (b *Boards) Update(ctx context.Context, id uint, f BoardFields) error {
	if err := b.tx(ctx, id, func(board *models.Board) error {
		if f.Name != nil {
			name := strings.TrimSpace(*f.Name)
			if name == "" {
				return fmt.Errorf("%w: board name is empty", ErrInvalidRequest)
			}
			board.Name = name
		}
		return nil
	}); err != nil {
		return err
	}

	b.n.Broadcast(constants.ChannelUpdate)
	return nil
}

func (b *Boards) Delete(ctx context.Context, id uint) error {
	res := b.db.WithContext(ctx).Delete(&models.Board{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete board %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	b.n.Broadcast(constants.ChannelUpdate)
	return nil
}

// tx 在一个事务内加载看板（加行锁）、修改、整行写回
func (b *Boards) tx(ctx context.Context, id uint, fn func(board *models.Board) error) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board models.Board
		if err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).First(&board, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load board %d: %w", id, err)
		}

		if err := fn(&board); err != nil {
			return err
		}

		if err := tx.Save(&board).Error; err != nil {
			return fmt.Errorf("save board %d: %w", id, err)
		}
		return nil
	})
}

// mutate 用于子项的修改，提交后只通知这个看板的频道
func (b *Boards) mutate(ctx context.Context, id uint, fn func(board *models.Board) error) error {
	if err := b.tx(ctx, id, fn); err != nil {
		return err
	}

	b.n.Broadcast(BoardChannel(id))
	return nil
}
