package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rule *Rule) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Rule, error)
	List(ctx context.Context, db *gorm.DB) ([]Rule, error)
	// InvoiceNumbersInPeriod returns the numbers of every invoice issued to
	// the client between from (inclusive) and to (exclusive).
	InvoiceNumbersInPeriod(ctx context.Context, db *gorm.DB, clientID snowflake.ID, from, to time.Time) ([]string, error)
}
