package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// LeaveRequest is the workflow record tying an employee's time-off ask to
// the balance it draws from. The balance is debited on approval, never on
// submission; cancelling an approved request credits the days back.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`
	BalanceID   uuid.UUID `gorm:"type:uuid;not null"`

	StartDate time.Time       `gorm:"type:date;not null"`
	EndDate   time.Time       `gorm:"type:date;not null"`
	TotalDays decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsHalfDay bool            `gorm:"not null;default:false"`
	Reason    string          `gorm:"type:text"`

	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	ApprovalDate *time.Time
	ApprovalBy   *string `gorm:"type:varchar(64)"`
	Remarks      string  `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusApproved ||
			targetStatus == StatusRejected ||
			targetStatus == StatusCancelled
	case StatusApproved:
		return targetStatus == StatusCancelled
	default:
		return false
	}
}
