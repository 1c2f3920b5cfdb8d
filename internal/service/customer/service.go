package customer

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/emporia/internal/database"
	"github.com/Additional-Code/emporia/internal/entity"
	"github.com/Additional-Code/emporia/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/emporia/service/customer")

const conflictMessage = "Customer with this email or phone already exists"

// Repository is the persistence surface the service depends on.
type Repository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id int64) error
}

// UpdateParams carries the optional fields of a customer update. Nil fields
// leave the stored value unchanged.
type UpdateParams struct {
	Name  *string
	Email *string
	Phone *string
}

// Service encapsulates business logic around customers.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository Repository
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:   p.Repository,
		logger: p.Logger,
	}
}

// Get retrieves a customer by id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Customer, error) {
	ctx, span := serviceTracer.Start(ctx, "CustomerService.Get", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, errorbank.NotFound("Customer not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load customer", errorbank.WithCause(err))
	}
	return customer, nil
}

// Create persists a new customer. Uniqueness of email and phone is enforced
// by the store and surfaced as a conflict.
func (s *Service) Create(ctx context.Context, customer *entity.Customer) error {
	if customer == nil {
		return errorbank.BadRequest("customer payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "CustomerService.Create", trace.WithAttributes(attribute.String("customer.email", customer.Email)))
	defer span.End()

	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return errorbank.Conflict(conflictMessage)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create customer", errorbank.WithCause(err))
	}
	return nil
}

// Update merges the supplied fields into the stored customer and persists the
// result. Fields absent from params keep their prior value.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*entity.Customer, error) {
	ctx, span := serviceTracer.Start(ctx, "CustomerService.Update", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, errorbank.NotFound("Customer not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load customer", errorbank.WithCause(err))
	}

	if params.Name != nil {
		customer.Name = *params.Name
	}
	if params.Email != nil {
		customer.Email = *params.Email
	}
	if params.Phone != nil {
		customer.Phone = *params.Phone
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, errorbank.Conflict(conflictMessage)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to update customer", errorbank.WithCause(err))
	}
	return customer, nil
}

// Delete removes a customer by id. Dependent accounts and orders are left to
// the store's foreign key policy.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "CustomerService.Delete", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errorbank.NotFound("Customer not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to delete customer", errorbank.WithCause(err))
	}

	if s.logger != nil {
		s.logger.Info("customer deleted", zap.Int64("id", id))
	}
	return nil
}
