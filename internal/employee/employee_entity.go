package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName         string    `gorm:"type:varchar(150);not null"`
	Email            string    `gorm:"type:varchar(150);uniqueIndex"`
	HireDate         time.Time `gorm:"type:date;not null"`
	EmploymentStatus string    `gorm:"type:varchar(30);not null;default:'ACTIVE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}

const (
	StatusActive     = "ACTIVE"
	StatusProbation  = "PROBATION"
	StatusSuspended  = "SUSPENDED"
	StatusTerminated = "TERMINATED"
)

// ServiceMonths returns full months of service completed at the given date.
func (e Employee) ServiceMonths(at time.Time) int {
	if at.Before(e.HireDate) {
		return 0
	}
	months := (at.Year()-e.HireDate.Year())*12 + int(at.Month()) - int(e.HireDate.Month())
	if at.Day() < e.HireDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
