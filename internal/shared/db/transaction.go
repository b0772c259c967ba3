// Package db provides database utilities including transaction management.
package db

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// txKey is the context key for storing transaction.
type txKey struct{}

// Transactor is the unit-of-work seam services depend on.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactionManager runs units of work against one gorm handle. Repositories
// pick up the active transaction from the context through GetTxFromContext.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction executes fn in a transaction. A non-nil error from fn rolls
// everything back. A nested call joins the outer transaction.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.run(ctx, nil, fn)
}

// RunSerializable is RunInTransaction at the strongest isolation level. On
// sqlite every write transaction is already serialized; the option matters
// for server databases.
func (tm *TransactionManager) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (tm *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	var txOpts []*sql.TxOptions
	if opts != nil && tm.db.Dialector.Name() != "sqlite" {
		txOpts = append(txOpts, opts)
	}
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, txOpts...)
}

// GetTx returns the transaction from context if available, otherwise the default DB.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	return GetTxFromContext(ctx, tm.db)
}

// GetTxFromContext returns the transaction from context if available.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}

// PassthroughTransactor runs fn directly. Service tests with in-memory fakes
// use it where no store transaction exists.
type PassthroughTransactor struct{}

func (PassthroughTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (PassthroughTransactor) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
