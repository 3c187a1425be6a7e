package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/factory_registry/pkg/db"

	"github.com/Skotchmaster/factory_registry/internal/domain"
)

// GormRepo is the single-table store behind every entity. M is the gorm model.
type GormRepo[M any] struct {
	DB *gorm.DB
}

func New[M any](db *gorm.DB) *GormRepo[M] {
	return &GormRepo[M]{DB: db}
}

func (r *GormRepo[M]) Get(ctx context.Context, id uint) (*M, error) {
	var row M
	if err := r.DB.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func (r *GormRepo[M]) List(ctx context.Context, offset, limit int) (int64, []M, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(new(M)).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]M, 0, limit)
	if err := r.DB.WithContext(ctx).Model(new(M)).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

// Create inserts row after checking refs inside the same transaction.
func (r *GormRepo[M]) Create(ctx context.Context, row *M, refs ...domain.Ref) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx, refs); err != nil {
			return err
		}
		if err := tx.Create(row).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}

// Update loads the row, lets apply overwrite its mutable fields and saves it.
func (r *GormRepo[M]) Update(ctx context.Context, id uint, apply func(*M), refs ...domain.Ref) (*M, error) {
	var row M
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return translate(err)
		}
		if err := checkRefs(tx, refs); err != nil {
			return err
		}
		apply(&row)
		if err := tx.Save(&row).Error; err != nil {
			return translate(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the row and returns it as it was before deletion.
func (r *GormRepo[M]) Delete(ctx context.Context, id uint) (*M, error) {
	var row M
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return translate(err)
		}
		res := tx.Delete(new(M), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func checkRefs(tx *gorm.DB, refs []domain.Ref) error {
	for _, ref := range refs {
		var n int64
		if err := tx.Table(ref.Table).Where("id = ?", ref.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s %d does not exist", domain.ErrValidation, ref.Field, ref.ID)
		}
	}
	return nil
}

func translate(err error) error {
	switch {
	case pkgdb.IsNotFound(err):
		return domain.ErrNotFound
	case pkgdb.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	default:
		return err
	}
}
