package entity

import "github.com/uptrace/bun"

// Customer represents a customer record stored in the relational database.
// Email is unique across all customers; phone is unique when present and
// stored as NULL when empty.
type Customer struct {
	bun.BaseModel `bun:"table:customers"`

	ID    int64  `bun:",pk,autoincrement"`
	Name  string `bun:"name,notnull"`
	Email string `bun:"email,notnull,unique"`
	Phone string `bun:"phone,nullzero,unique"`
}
