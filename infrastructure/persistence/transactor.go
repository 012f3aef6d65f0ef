package persistence

import (
	"context"

	"gorm.io/gorm"
)

// GormTransactor runs a function inside one database transaction. The
// transaction handle travels down through the context, where every
// repository picks it up via TxFromContext.
type GormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

func (t *GormTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTx(ctx, tx))
	})
}
