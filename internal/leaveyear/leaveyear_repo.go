package leaveyear

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaveyear_repo.go -destination=mock/leaveyear_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, cfg *Configuration) error
	FindAll(ctx context.Context) ([]Configuration, error)
	FindByID(ctx context.Context, id string) (*Configuration, error)
	FindByYear(ctx context.Context, year string) (*Configuration, error)
	FindByDate(ctx context.Context, date time.Time) (*Configuration, error)
	FindPrevious(ctx context.Context, beforeStart time.Time) (*Configuration, error)
	Update(ctx context.Context, cfg *Configuration) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cfg *Configuration) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Configuration, error) {
	var configs []Configuration
	err := r.db.WithContext(ctx).
		Order("cutoff_start_date DESC").
		Find(&configs).Error
	return configs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Configuration, error) {
	var cfg Configuration
	err := r.db.WithContext(ctx).First(&cfg, "id = ?", id).Error
	return &cfg, err
}

func (r *repository) FindByYear(ctx context.Context, year string) (*Configuration, error) {
	var cfg Configuration
	err := r.db.WithContext(ctx).First(&cfg, "year = ?", year).Error
	return &cfg, err
}

// FindByDate selects the active configuration whose cutoff window contains
// the date; ties go to the most recent cutoff_start_date.
func (r *repository) FindByDate(ctx context.Context, date time.Time) (*Configuration, error) {
	var cfg Configuration
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("cutoff_start_date <= ? AND cutoff_end_date >= ?", date, date).
		Order("cutoff_start_date DESC").
		First(&cfg).Error
	return &cfg, err
}

// FindPrevious returns the active configuration that ended most recently
// before the given start date; the annual generator uses it to locate last
// year's balances for carryover.
func (r *repository) FindPrevious(ctx context.Context, beforeStart time.Time) (*Configuration, error) {
	var cfg Configuration
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("cutoff_end_date < ?", beforeStart).
		Order("cutoff_end_date DESC").
		First(&cfg).Error
	return &cfg, err
}

func (r *repository) Update(ctx context.Context, cfg *Configuration) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
