package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	FindAll(ctx context.Context) ([]Holiday, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]time.Time, error)
	Delete(ctx context.Context, id string) error
}

// Calendar is the lookup port the request workflow consumes when computing
// total days excluding holidays.
type Calendar interface {
	FindByDateRange(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByDateRange(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}
	return dates, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id).Error
}
