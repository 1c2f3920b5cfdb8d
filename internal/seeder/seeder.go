package seeder

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/emporia/internal/database"
	"github.com/Additional-Code/emporia/internal/entity"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Customers seeds example customers if they are missing. Inserts use the
// dialect's ignore clause so reruns do not trip the email constraint.
func (s *Seeder) Customers(ctx context.Context) error {
	samples := []entity.Customer{
		{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"},
		{Name: "Grace Hopper", Email: "grace@example.com", Phone: "555-0101"},
	}

	for _, sample := range samples {
		customer := sample
		_, err := s.db.NewInsert().Model(&customer).
			Ignore().
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded customers", zap.Int("count", len(samples)))
	}
	return nil
}

// Products seeds example catalogue entries if they are missing.
func (s *Seeder) Products(ctx context.Context) error {
	samples := []entity.Product{
		{Name: "Widget", Description: "A standard widget", Price: 9.99, StockQuantity: 100},
		{Name: "Gadget", Description: "A deluxe gadget", Price: 24.50, StockQuantity: 40},
		{Name: "Gizmo", Price: 3.25, StockQuantity: 250},
	}

	for _, sample := range samples {
		product := sample
		_, err := s.db.NewInsert().Model(&product).
			Ignore().
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded products", zap.Int("count", len(samples)))
	}
	return nil
}
