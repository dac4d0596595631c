package leaverequest

type CreateRequestRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	// Optional; ignored for half-day requests, clamped against the date
	// span otherwise.
	TotalDays *string `json:"total_days"`
	IsHalfDay bool    `json:"is_half_day"`
	Reason    string  `json:"reason" binding:"required,max=500"`
}

type UpdateRequestRequest struct {
	LeaveTypeID string  `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	TotalDays   *string `json:"total_days"`
	IsHalfDay   bool    `json:"is_half_day"`
	Reason      string  `json:"reason" binding:"required,max=500"`
}

type RejectRequestRequest struct {
	Remarks string `json:"remarks" binding:"required,max=500"`
}

type RequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	LeaveTypeID  string  `json:"leave_type_id"`
	BalanceID    string  `json:"balance_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    string  `json:"total_days"`
	IsHalfDay    bool    `json:"is_half_day"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ApprovalDate *string `json:"approval_date,omitempty"`
	ApprovalBy   *string `json:"approval_by,omitempty"`
	Remarks      string  `json:"remarks,omitempty"`
}
