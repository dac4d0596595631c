package leaveyear

import (
	"time"

	"github.com/google/uuid"
)

// Configuration maps a calendar date range onto a named fiscal leave year
// (e.g. "2024-2025" running from 2024-04-01 to 2025-03-31).
type Configuration struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CutoffStartDate time.Time `gorm:"type:date;not null;index:idx_leave_years_cutoff"`
	CutoffEndDate   time.Time `gorm:"type:date;not null;index:idx_leave_years_cutoff"`
	Year            string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_leave_years_year"`
	IsActive        bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether the date falls inside the cutoff window,
// boundaries included.
func (c Configuration) Contains(date time.Time) bool {
	return !date.Before(c.CutoffStartDate) && !date.After(c.CutoffEndDate)
}
