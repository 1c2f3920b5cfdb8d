package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/emporia/internal/cache"
	"github.com/Additional-Code/emporia/internal/config"
	"github.com/Additional-Code/emporia/internal/database"
	"github.com/Additional-Code/emporia/internal/entity"
	"github.com/Additional-Code/emporia/internal/messaging"
	"github.com/Additional-Code/emporia/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/emporia/service/product")

// Repository is the persistence surface the service depends on.
type Repository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	Restock(ctx context.Context, id int64, amount int64) (*entity.Product, error)
}

// UpdateParams carries the optional fields of a product update. Nil fields
// leave the stored value unchanged.
type UpdateParams struct {
	Name          *string
	Description   *string
	Price         *float64
	StockQuantity *int64
}

// Service encapsulates business logic around products and stock levels.
type Service struct {
	repo      Repository
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// Get retrieves a product by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Get", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if product, err := s.getFromCache(ctx, id); err == nil {
		return product, nil
	} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("products cache read failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, errorbank.NotFound("Product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load product", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, product); err != nil {
		if s.logger != nil {
			s.logger.Warn("products cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	return product, nil
}

// List returns the entire catalogue. No ordering is guaranteed.
func (s *Service) List(ctx context.Context) ([]entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.List")
	defer span.End()

	products, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list products", errorbank.WithCause(err))
	}
	return products, nil
}

// Create persists a new product and primes the cache.
func (s *Service) Create(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return errorbank.BadRequest("product payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "ProductService.Create", trace.WithAttributes(attribute.String("product.name", product.Name)))
	defer span.End()

	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return errorbank.Conflict("Product with this name already exists")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create product", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, product); err != nil {
		if s.logger != nil {
			s.logger.Warn("products cache write failed", zap.Int64("id", product.ID), zap.Error(err))
		}
	}
	return nil
}

// Update merges the supplied fields into the stored product and persists the
// result. Persistence rejections surface as a generic bad request, matching
// the historical API contract rather than the create path's conflict.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Update", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, errorbank.NotFound("Product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load product", errorbank.WithCause(err))
	}

	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.Description != nil {
		product.Description = *params.Description
	}
	if params.Price != nil {
		product.Price = *params.Price
	}
	if params.StockQuantity != nil {
		product.StockQuantity = *params.StockQuantity
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, errorbank.BadRequest("Error updating product")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to update product", errorbank.WithCause(err))
	}

	s.invalidateCache(ctx, id)
	return product, nil
}

// Delete removes a product by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Delete", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errorbank.NotFound("Product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to delete product", errorbank.WithCause(err))
	}

	s.invalidateCache(ctx, id)
	return nil
}

// Restock adds amount to the product's stock level. Amount may be negative;
// the stored value has no lower bound. A restocked event is published after a
// successful write.
func (s *Service) Restock(ctx context.Context, id int64, amount int64) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Restock", trace.WithAttributes(
		attribute.Int64("product.id", id),
		attribute.Int64("restock.amount", amount),
	))
	defer span.End()

	product, err := s.repo.Restock(ctx, id, amount)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, errorbank.NotFound("Product not found")
		}
		if errors.Is(err, database.ErrConflict) {
			return nil, errorbank.BadRequest("Error restocking product")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to restock product", errorbank.WithCause(err))
	}

	s.invalidateCache(ctx, id)
	s.publishRestocked(ctx, product, amount)
	return product, nil
}

func (s *Service) publishRestocked(ctx context.Context, product *entity.Product, amount int64) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := RestockedEvent{
		ID:            product.ID,
		Name:          product.Name,
		StockQuantity: product.StockQuantity,
		RestockAmount: amount,
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal product restocked", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("product-%d", product.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish product restocked", zap.Error(err))
		}
	}
}

func (s *Service) cacheKey(id int64) string {
	return fmt.Sprintf("products:%d", id)
}

func (s *Service) getFromCache(ctx context.Context, id int64) (*entity.Product, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		return nil, err
	}
	var product entity.Product
	if err := json.Unmarshal(bytes, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) storeInCache(ctx context.Context, product *entity.Product) error {
	if s.cache == nil || product == nil {
		return nil
	}
	bytes, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.cacheKey(product.ID), bytes, s.cacheTTL)
}

func (s *Service) invalidateCache(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cacheKey(id)); err != nil {
		if s.logger != nil {
			s.logger.Warn("products cache delete failed", zap.Int64("id", id), zap.Error(err))
		}
	}
}

// RestockedEvent is emitted after stock is adjusted for a product.
type RestockedEvent struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	StockQuantity int64     `json:"stock_quantity"`
	RestockAmount int64     `json:"restock_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}
