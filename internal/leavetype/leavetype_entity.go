package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveType is immutable reference data: the catalogue of leave kinds
// (annual, sick, unpaid, ...) policies and balances hang off.
type LeaveType struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Code     string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_leave_types_code"`
	IsPaid   bool      `gorm:"not null;default:true"`
	IsActive bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_types_deleted_at"`
}
