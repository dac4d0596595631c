package leaverequest

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	List(ctx context.Context, employeeID, status string) ([]LeaveRequest, error)
	// HasOverlappingRequest only counts pending and approved rows; rejected
	// and cancelled requests do not block the period. The check spans every
	// leave type: an employee cannot book the same days twice.
	HasOverlappingRequest(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)
	Update(ctx context.Context, lr *LeaveRequest) error
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

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).First(&lr, "id = ?", id).Error
	return &lr, err
}

// FindByIDForUpdate locks the request row so concurrent status transitions
// serialize; the loser of the race re-reads the already-transitioned state.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) List(ctx context.Context, employeeID, status string) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var requests []LeaveRequest
	err := db.Order("start_date DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) HasOverlappingRequest(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(lr).Error
}
