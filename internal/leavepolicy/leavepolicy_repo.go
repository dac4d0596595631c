package leavepolicy

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavepolicy_repo.go -destination=mock/leavepolicy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *LeavePolicy) error
	FindAll(ctx context.Context) ([]LeavePolicy, error)
	FindByID(ctx context.Context, id string) (*LeavePolicy, error)
	FindActiveByLeaveType(ctx context.Context, leaveTypeID string) (*LeavePolicy, error)
	ListActive(ctx context.Context) ([]LeavePolicy, error)
	Update(ctx context.Context, p *LeavePolicy) error
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

func (r *repository) Create(ctx context.Context, p *LeavePolicy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.db.WithContext(ctx).
		Order("effective_date DESC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

// FindActiveByLeaveType returns the most recent active policy by
// effective_date. "One active policy per type" is advisory; ordering makes
// the lookup deterministic when the invariant is violated.
func (r *repository) FindActiveByLeaveType(ctx context.Context, leaveTypeID string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.db.WithContext(ctx).
		Where("leave_type_id = ?", leaveTypeID).
		Where("status = ?", StatusActive).
		Order("effective_date DESC").
		First(&p).Error
	return &p, err
}

func (r *repository) ListActive(ctx context.Context) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Order("effective_date DESC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) Update(ctx context.Context, p *LeavePolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}
