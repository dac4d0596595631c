package leavecycle

type CreateCycleRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Year        *int   `json:"year"`
}

type SetupCyclesRequest struct {
	Year            *int `json:"year"`
	ForceRegenerate bool `json:"force_regenerate"`
}

type CycleResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	LeaveTypeID    string `json:"leave_type_id"`
	CycleStartYear int    `json:"cycle_start_year"`
	CycleEndYear   int    `json:"cycle_end_year"`
	TotalCarried   string `json:"total_carried"`
	Status         string `json:"status"`
}

type SetupFailure struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	Reason      string `json:"reason"`
}

// SetupCyclesResult reports the batch outcome; failed employees never abort
// the rest of the batch.
type SetupCyclesResult struct {
	Created  []CycleResponse `json:"created"`
	Skipped  int             `json:"skipped"`
	Failures []SetupFailure  `json:"failures"`
}
