package inventory

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/emporia/internal/config"
	"github.com/Additional-Code/emporia/internal/messaging"
	productsvc "github.com/Additional-Code/emporia/internal/service/product"
	"github.com/Additional-Code/emporia/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/emporia/worker/inventory")

// Module registers inventory worker handlers.
var Module = fx.Module("worker_inventory",
	fx.Provide(
		fx.Annotate(
			NewRestockedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewRestockedHandler sets up a worker handler that records stock adjustments
// and warns when a product's level drops to the configured threshold.
func NewRestockedHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	threshold := cfg.Inventory.LowStockThreshold

	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.inventory.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event productsvc.RestockedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode product restocked", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		logger.Info("product restocked event processed",
			zap.Int64("id", event.ID),
			zap.String("name", event.Name),
			zap.Int64("stock_quantity", event.StockQuantity),
			zap.Int64("restock_amount", event.RestockAmount),
		)

		if event.StockQuantity <= threshold {
			logger.Warn("product stock at or below threshold",
				zap.Int64("id", event.ID),
				zap.String("name", event.Name),
				zap.Int64("stock_quantity", event.StockQuantity),
				zap.Int64("threshold", threshold),
			)
		}

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
