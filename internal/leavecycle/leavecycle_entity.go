package leavecycle

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
)

// LeaveCycle groups consecutive leave years into one carryover window per
// employee and leave type. At most one active cycle may exist per pair, and
// cycle year ranges for the same pair must not overlap.
type LeaveCycle struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_cycles_employee_type"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_cycles_employee_type"`

	CycleStartYear int             `gorm:"not null"`
	CycleEndYear   int             `gorm:"not null"`
	TotalCarried   decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Status         string          `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether [startYear, endYear] intersects this cycle's span.
func (c LeaveCycle) Overlaps(startYear, endYear int) bool {
	return startYear <= c.CycleEndYear && c.CycleStartYear <= endYear
}
