package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context pairs a request context with the transaction a repo call should
// join. A zero Tx means the call runs on the repo's own handle.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Conn returns the handle a query should use, bound to Ctx.
func (c Context) Conn(fallback *gorm.DB) *gorm.DB {
	db := c.Tx
	if db == nil {
		db = fallback
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return db.WithContext(ctx)
}

// InTx reports whether the call joins an open transaction.
func (c Context) InTx() bool { return c.Tx != nil }
