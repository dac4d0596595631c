package leavepolicy

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft   = "DRAFT"
	StatusActive  = "ACTIVE"
	StatusRetired = "RETIRED"
)

// AllStatuses is the allowed_employee_statuses wildcard.
const AllStatuses = "all"

// LeavePolicy is the versioned entitlement rule for one leave type.
// Policies are never edited after retirement; a replacement policy is
// created and activated instead.
type LeavePolicy struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_policies_type_status"`

	AnnualEntitlement decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CarryLimit        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	EncashLimit       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CycleLengthYears  int             `gorm:"not null;default:1"`

	EffectiveDate time.Time  `gorm:"type:date;not null"`
	ExpiryDate    *time.Time `gorm:"type:date"`
	Status        string     `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_leave_policies_type_status"`

	MinimumServiceMonths int `gorm:"not null;default:0"`
	// Comma-separated whitelist of employment statuses, or "all".
	AllowedEmployeeStatuses string `gorm:"type:varchar(200);not null;default:'all'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowsEmployeeStatus reports whether the policy covers employees with the
// given employment status.
func (p LeavePolicy) AllowsEmployeeStatus(status string) bool {
	if p.AllowedEmployeeStatuses == "" || p.AllowedEmployeeStatuses == AllStatuses {
		return true
	}
	for _, allowed := range strings.Split(p.AllowedEmployeeStatuses, ",") {
		if strings.EqualFold(strings.TrimSpace(allowed), status) {
			return true
		}
	}
	return false
}
