package leavetransaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types. Signs follow the ledger convention: credits (accrual,
// carry) are positive, debits (use, encashment) are negative.
const (
	TypeAdjustment = "ADJUSTMENT"
	TypeRequest    = "REQUEST"
	TypeCarry      = "CARRY"
	TypeEncashment = "ENCASHMENT"
)

// LeaveTransaction is one append-only ledger entry. Rows are never updated
// or deleted after insert; corrections append a reversing entry. The signed
// sum per balance and type must reconcile to the balance columns.
type LeaveTransaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BalanceID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_leave_transactions_balance"`
	TransactionType string          `gorm:"type:varchar(20);not null"`
	Days            decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Remarks         string          `gorm:"type:text"`

	CreatedAt time.Time
	// Present for schema parity only; the normal flow never soft-deletes a
	// ledger entry.
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_transactions_deleted_at"`
}
