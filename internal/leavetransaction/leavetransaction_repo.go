package leavetransaction

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository deliberately exposes no Update or Delete: the log is
// append-only and reconciliation depends on it staying that way.
//
//go:generate mockgen -source=leavetransaction_repo.go -destination=mock/leavetransaction_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Append(ctx context.Context, t *LeaveTransaction) error
	ListByBalance(ctx context.Context, balanceID string) ([]LeaveTransaction, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Append(ctx context.Context, t *LeaveTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) ListByBalance(ctx context.Context, balanceID string) ([]LeaveTransaction, error) {
	var transactions []LeaveTransaction
	err := r.db.WithContext(ctx).
		Where("balance_id = ?", balanceID).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func MapToResponse(t LeaveTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID.String(),
		BalanceID:       t.BalanceID.String(),
		TransactionType: t.TransactionType,
		Days:            t.Days.StringFixed(2),
		Remarks:         t.Remarks,
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
