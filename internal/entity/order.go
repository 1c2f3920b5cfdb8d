package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Order is a schema-level record linking a purchase to a customer. No HTTP
// surface exists for orders yet; the table participates in the customer
// relationship only.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID         int64     `bun:",pk,autoincrement"`
	Date       time.Time `bun:"date,nullzero"`
	CustomerID int64     `bun:"customer_id,notnull"`
}
