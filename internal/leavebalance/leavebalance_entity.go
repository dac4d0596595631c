package leavebalance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// LeaveBalance is the per employee, leave type and leave year account.
// One row exists per (employee_id, leave_type_id, year).
//
// Invariant after every write:
//
//	remaining = beginning_balance + earned + carried_over - used - encashed
//
// Remaining is always recomputed from the five inputs at write time; it is
// never read back and trusted.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leave_balances_owner_year"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leave_balances_owner_year"`
	PolicyID    uuid.UUID `gorm:"type:uuid;not null"`
	Year        string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_leave_balances_owner_year"`

	BeginningBalance decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Earned           decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Used             decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	CarriedOver      decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Encashed         decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Remaining        decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`

	LastTransactionDate *time.Time
	Status              string `gorm:"type:varchar(20);not null;default:'OPEN'"`
	Remarks             string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recompute derives remaining from the five ledger fields.
func (b *LeaveBalance) Recompute() {
	b.Remaining = b.BeginningBalance.
		Add(b.Earned).
		Add(b.CarriedOver).
		Sub(b.Used).
		Sub(b.Encashed)
}

// Touch stamps the last transaction date.
func (b *LeaveBalance) Touch(at time.Time) {
	t := at.UTC()
	b.LastTransactionDate = &t
}
