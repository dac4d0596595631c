package events

import "time"

const LeaveRequestApprovedTopic = "leave.request.approved"

type LeaveRequestApprovedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	BalanceID   string    `json:"balance_id"`
	TotalDays   string    `json:"total_days"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	ApprovedBy  string    `json:"approved_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
