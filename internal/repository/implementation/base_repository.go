package implementation

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// baseRepository bounds every statement by the configured query timeout.
type baseRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func (b baseRepository) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if b.timeout <= 0 {
		return b.db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	return b.db.WithContext(ctx), cancel
}
