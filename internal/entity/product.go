package entity

import "github.com/uptrace/bun"

// Product is a catalogue item with a tracked stock level.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID            int64   `bun:",pk,autoincrement"`
	Name          string  `bun:"name,notnull"`
	Description   string  `bun:"description,nullzero"`
	Price         float64 `bun:"price,notnull"`
	StockQuantity int64   `bun:"stock_quantity,notnull"`
}
