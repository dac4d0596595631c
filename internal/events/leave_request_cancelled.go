package events

import "time"

const LeaveRequestCancelledTopic = "leave.request.cancelled"

type LeaveRequestCancelledEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	BalanceID   string    `json:"balance_id"`
	TotalDays   string    `json:"total_days"`
	// True when the request was approved before cancellation, meaning the
	// debit was credited back.
	WasApproved bool      `json:"was_approved"`
	CancelledBy string    `json:"cancelled_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
