package leavebalance

import "go-leaveledger/internal/leavetransaction"

type CreateBalanceRequest struct {
	EmployeeID       string  `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID      string  `json:"leave_type_id" binding:"required,uuid"`
	PolicyID         string  `json:"policy_id" binding:"required,uuid"`
	Year             string  `json:"year" binding:"required,max=20"`
	BeginningBalance *string `json:"beginning_balance"`
	Earned           *string `json:"earned"`
	Used             *string `json:"used"`
	CarriedOver      *string `json:"carried_over"`
	Encashed         *string `json:"encashed"`
	Remarks          string  `json:"remarks"`
}

// AdjustBalanceRequest patches ledger fields only. Remaining is not
// accepted: it is always derived.
type AdjustBalanceRequest struct {
	BeginningBalance *string `json:"beginning_balance"`
	Earned           *string `json:"earned"`
	Used             *string `json:"used"`
	CarriedOver      *string `json:"carried_over"`
	Encashed         *string `json:"encashed"`
	Remarks          string  `json:"remarks"`
}

type GenerateAnnualRequest struct {
	Year            string `json:"year" binding:"required,max=20"`
	ForceRegenerate bool   `json:"force_regenerate"`
}

type EncashRequest struct {
	Days    string `json:"days" binding:"required"`
	Remarks string `json:"remarks"`
}

type BalanceResponse struct {
	ID                  string  `json:"id"`
	EmployeeID          string  `json:"employee_id"`
	LeaveTypeID         string  `json:"leave_type_id"`
	PolicyID            string  `json:"policy_id"`
	Year                string  `json:"year"`
	BeginningBalance    string  `json:"beginning_balance"`
	Earned              string  `json:"earned"`
	Used                string  `json:"used"`
	CarriedOver         string  `json:"carried_over"`
	Encashed            string  `json:"encashed"`
	Remaining           string  `json:"remaining"`
	LastTransactionDate *string `json:"last_transaction_date,omitempty"`
	Status              string  `json:"status"`
	Remarks             string  `json:"remarks,omitempty"`
}

type GenerateFailure struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	Reason      string `json:"reason"`
}

// GenerateAnnualResult reports the batch outcome. Failures are collected
// per employee; they never abort the remainder of the batch.
type GenerateAnnualResult struct {
	Year      string            `json:"year"`
	Generated []BalanceResponse `json:"generated"`
	Skipped   int               `json:"skipped"`
	Failures  []GenerateFailure `json:"failures"`
}

type ResetForYearResult struct {
	Year  string `json:"year"`
	Reset int64  `json:"reset"`
}

type BalanceTransactionsResponse struct {
	Balance      BalanceResponse                         `json:"balance"`
	Transactions []leavetransaction.TransactionResponse `json:"transactions"`
}
