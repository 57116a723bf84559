// File: internal/local/repository.go
package local

import (
	"context"
	"errors"

	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/platform/database"

	"gorm.io/gorm"
)

// Repository defines the interface for local data operations.
type Repository interface {
	Create(ctx context.Context, local *Local) error
	FindByName(ctx context.Context, name string) (*Local, error)
	FindAll(ctx context.Context) ([]Local, error)
	FindBatch(ctx context.Context, offset, limit int) ([]Local, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM local repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a local. The unique index on name decides duplicates.
func (r *gormRepository) Create(ctx context.Context, local *Local) error {
	err := r.db.WithContext(ctx).Create(local).Error
	if err != nil {
		if database.IsUniqueViolation(err, "idx_locals_name", "locals.name") {
			return common.ErrDuplicateName.WithDetails(local.Name)
		}
		return common.ErrStore.Wrap(err)
	}
	return nil
}

// FindByName retrieves a local by its exact name.
func (r *gormRepository) FindByName(ctx context.Context, name string) (*Local, error) {
	var l Local
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Local not found with this name.")
		}
		return nil, common.ErrStore.Wrap(err)
	}
	return &l, nil
}

// FindAll returns every local ordered by name.
func (r *gormRepository) FindAll(ctx context.Context) ([]Local, error) {
	var locals []Local
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&locals).Error; err != nil {
		return nil, common.ErrStore.Wrap(err)
	}
	return locals, nil
}

// FindBatch pages through locals in a stable order, for bulk indexing.
func (r *gormRepository) FindBatch(ctx context.Context, offset, limit int) ([]Local, error) {
	var locals []Local
	err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&locals).Error
	if err != nil {
		return nil, common.ErrStore.Wrap(err)
	}
	return locals, nil
}

// DeleteAll removes every local and reports how many rows went.
func (r *gormRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Local{})
	if res.Error != nil {
		return 0, common.ErrStore.Wrap(res.Error)
	}
	return res.RowsAffected, nil
}
