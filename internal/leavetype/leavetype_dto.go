package leavetype

type CreateLeaveTypeRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required,alphanum,uppercase,max=30"`
	IsPaid *bool  `json:"is_paid"`
}

type UpdateLeaveTypeRequest struct {
	Name     string `json:"name" binding:"required"`
	IsPaid   *bool  `json:"is_paid" binding:"required"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

type LeaveTypeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsPaid   bool   `json:"is_paid"`
	IsActive bool   `json:"is_active"`
}
