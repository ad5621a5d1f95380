package gormpersistence

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor implements repository.Transactor on top of gorm.DB.Transaction.
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a GormTransactor.
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	if db == nil {
		panic("database connection cannot be nil for GormTransactor")
	}
	return &GormTransactor{db: db}
}

// WithinTransaction runs fn in a transaction. A call made while a transaction
// is already attached to ctx joins the outer transaction.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	// gorm rolls back when fn returns an error or panics and commits otherwise.
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction attached to ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
