package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CRUD is the uniform storage contract every resource repository embeds.
// DeleteByID reports the number of rows removed so callers can distinguish
// not-found from success without a prior read.
type CRUD[T any] interface {
	Create(ctx context.Context, record *T) error
	Save(ctx context.Context, record *T) error
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Count(ctx context.Context) (int64, error)
}

type crud[T any] struct {
	db *gorm.DB
}

func newCRUD[T any](db *gorm.DB) crud[T] {
	return crud[T]{db: db}
}

func (r *crud[T]) Create(ctx context.Context, record *T) error {
	return translate(GetDB(ctx, r.db).Create(record).Error)
}

func (r *crud[T]) Save(ctx context.Context, record *T) error {
	return translate(GetDB(ctx, r.db).Save(record).Error)
}

func (r *crud[T]) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	var zero T
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&zero)
	return res.RowsAffected, translate(res.Error)
}

func (r *crud[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	if err := GetDB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *crud[T]) Count(ctx context.Context) (int64, error) {
	var zero T
	var total int64
	err := GetDB(ctx, r.db).Model(&zero).Count(&total).Error
	return total, translate(err)
}
