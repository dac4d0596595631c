package leavepolicy

type CreatePolicyRequest struct {
	LeaveTypeID             string  `json:"leave_type_id" binding:"required,uuid"`
	AnnualEntitlement       string  `json:"annual_entitlement" binding:"required"`
	CarryLimit              string  `json:"carry_limit" binding:"required"`
	EncashLimit             string  `json:"encash_limit" binding:"required"`
	CycleLengthYears        int     `json:"cycle_length_years" binding:"required,min=1"`
	EffectiveDate           string  `json:"effective_date" binding:"required"`
	ExpiryDate              *string `json:"expiry_date"`
	Activate                bool    `json:"activate"`
	MinimumServiceMonths    int     `json:"minimum_service_months" binding:"min=0"`
	AllowedEmployeeStatuses string  `json:"allowed_employee_statuses"`
}

type UpdatePolicyRequest struct {
	AnnualEntitlement       string  `json:"annual_entitlement" binding:"required"`
	CarryLimit              string  `json:"carry_limit" binding:"required"`
	EncashLimit             string  `json:"encash_limit" binding:"required"`
	CycleLengthYears        int     `json:"cycle_length_years" binding:"required,min=1"`
	EffectiveDate           string  `json:"effective_date" binding:"required"`
	ExpiryDate              *string `json:"expiry_date"`
	MinimumServiceMonths    int     `json:"minimum_service_months" binding:"min=0"`
	AllowedEmployeeStatuses string  `json:"allowed_employee_statuses"`
}

type PolicyResponse struct {
	ID                      string  `json:"id"`
	LeaveTypeID             string  `json:"leave_type_id"`
	AnnualEntitlement       string  `json:"annual_entitlement"`
	CarryLimit              string  `json:"carry_limit"`
	EncashLimit             string  `json:"encash_limit"`
	CycleLengthYears        int     `json:"cycle_length_years"`
	EffectiveDate           string  `json:"effective_date"`
	ExpiryDate              *string `json:"expiry_date,omitempty"`
	Status                  string  `json:"status"`
	MinimumServiceMonths    int     `json:"minimum_service_months"`
	AllowedEmployeeStatuses string  `json:"allowed_employee_statuses"`
}
