package leavebalance

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leavebalance_repo.go -destination=mock/leavebalance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindByID(ctx context.Context, id string) (*LeaveBalance, error)
	// FindByIDForUpdate takes a row lock; every balance mutation goes
	// through it so concurrent approvals serialize on the row.
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveBalance, error)
	FindByOwnerAndYear(ctx context.Context, employeeID, leaveTypeID, year string) (*LeaveBalance, error)
	FindByOwnerAndYearForUpdate(ctx context.Context, employeeID, leaveTypeID, year string) (*LeaveBalance, error)
	List(ctx context.Context, employeeID, year string) ([]LeaveBalance, error)
	Update(ctx context.Context, b *LeaveBalance) error
	ResetForYear(ctx context.Context, year string) (int64, error)
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

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) FindByOwnerAndYear(ctx context.Context, employeeID, leaveTypeID, year string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&b).Error
	return &b, err
}

func (r *repository) FindByOwnerAndYearForUpdate(ctx context.Context, employeeID, leaveTypeID, year string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&b).Error
	return &b, err
}

func (r *repository) List(ctx context.Context, employeeID, year string) ([]LeaveBalance, error) {
	db := r.db.WithContext(ctx).Model(&LeaveBalance{})
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}
	if year != "" {
		db = db.Where("year = ?", year)
	}

	var balances []LeaveBalance
	err := db.Order("year DESC").Find(&balances).Error
	return balances, err
}

func (r *repository) Update(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// ResetForYear bulk-zeroes the mutable ledger fields for every open balance
// of a year. Raw SQL keeps the recomputation of remaining in one statement.
func (r *repository) ResetForYear(ctx context.Context, year string) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE leave_balances
		SET earned = 0,
			used = 0,
			encashed = 0,
			remaining = beginning_balance + carried_over,
			updated_at = now()
		WHERE year = ? AND status = ?
	`, year, StatusOpen)
	return res.RowsAffected, res.Error
}
