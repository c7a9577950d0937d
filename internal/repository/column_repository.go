package repository

import (
	"context"
	"errors"

	"pharus/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Create(column).Error
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) List(ctx context.Context) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Order("position").Find(&columns).Error
	return columns, err
}

// SeedDefaults creates the standard four columns when the board is empty.
// Существующие колонки не трогаются.
func (r *ColumnRepository) SeedDefaults(ctx context.Context) ([]model.Column, error) {
	existing, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	defaults := []model.Column{
		{Title: "A Fazer", Type: model.StatusPending, Position: 0},
		{Title: "Em Andamento", Type: model.StatusInProgress, Position: 1},
		{Title: "Em Teste", Type: model.StatusReview, Position: 2},
		{Title: "Concluído", Type: model.StatusCompleted, Position: 3},
	}
	if err := r.db.WithContext(ctx).Create(&defaults).Error; err != nil {
		return nil, err
	}
	return defaults, nil
}
