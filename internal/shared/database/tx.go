package database

import (
	"context"

	"gorm.io/gorm"
)

// TxManager is the unit-of-work boundary for every multi-entity mutation:
// the balance read, the balance write and the transaction-log append all
// happen inside one RunInTransaction call, or none of them do.
type TxManager interface {
	RunInTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) RunInTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
