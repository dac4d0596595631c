package leavecycle

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavecycle_repo.go -destination=mock/leavecycle_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, c *LeaveCycle) error
	FindByID(ctx context.Context, id string) (*LeaveCycle, error)
	FindActive(ctx context.Context, employeeID, leaveTypeID string) (*LeaveCycle, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveCycle, error)
	HasOverlappingCycle(ctx context.Context, employeeID, leaveTypeID string, startYear, endYear int) (bool, error)
	Update(ctx context.Context, c *LeaveCycle) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, c *LeaveCycle) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveCycle, error) {
	var c LeaveCycle
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindActive(ctx context.Context, employeeID, leaveTypeID string) (*LeaveCycle, error) {
	var c LeaveCycle
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("status = ?", StatusActive).
		Order("cycle_start_year DESC").
		First(&c).Error
	return &c, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveCycle, error) {
	var cycles []LeaveCycle
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("cycle_start_year DESC").
		Find(&cycles).Error
	return cycles, err
}

func (r *repository) HasOverlappingCycle(ctx context.Context, employeeID, leaveTypeID string, startYear, endYear int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveCycle{}).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("cycle_start_year <= ? AND cycle_end_year >= ?", endYear, startYear).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, c *LeaveCycle) error {
	return r.db.WithContext(ctx).Save(c).Error
}
