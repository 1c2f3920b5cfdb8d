package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// CustomerAccount is a login account owned by a customer. A customer may own
// any number of accounts; usernames are unique across all accounts.
type CustomerAccount struct {
	bun.BaseModel `bun:"table:customer_accounts"`

	ID         int64     `bun:",pk,autoincrement"`
	Username   string    `bun:"username,notnull,unique"`
	Password   string    `bun:"password,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	IsActive   bool      `bun:"is_active,notnull,default:true"`
	CustomerID int64     `bun:"customer_id,notnull"`
}
