package account

import (
	"context"
	"errors"
	"time"

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

var serviceTracer = otel.Tracer("github.com/Additional-Code/emporia/service/account")

const conflictMessage = "CustomerAccount with this username already exists"

// Repository is the persistence surface the service depends on.
type Repository interface {
	Create(ctx context.Context, account *entity.CustomerAccount) error
	GetByID(ctx context.Context, id int64) (*entity.CustomerAccount, error)
	Update(ctx context.Context, account *entity.CustomerAccount) error
	Delete(ctx context.Context, id int64) error
}

// UpdateParams carries the optional fields of an account update. Only the
// username and password are updatable; nil fields keep their prior value.
type UpdateParams struct {
	Username *string
	Password *string
}

// Service encapsulates business logic around customer accounts.
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

// Get retrieves a customer account by id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.CustomerAccount, error) {
	ctx, span := serviceTracer.Start(ctx, "AccountService.Get", trace.WithAttributes(attribute.Int64("account.id", id)))
	defer span.End()

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, errorbank.NotFound("CustomerAccount not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load customer account", errorbank.WithCause(err))
	}
	return account, nil
}

// Create persists a new account for an existing customer. The creation
// timestamp is set here and the account starts active. Username uniqueness
// and the customer reference are enforced by the store.
func (s *Service) Create(ctx context.Context, account *entity.CustomerAccount) error {
	if account == nil {
		return errorbank.BadRequest("customer account payload is required")
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	account.IsActive = true

	ctx, span := serviceTracer.Start(ctx, "AccountService.Create", trace.WithAttributes(attribute.String("account.username", account.Username)))
	defer span.End()

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return errorbank.Conflict(conflictMessage)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create customer account", errorbank.WithCause(err))
	}
	return nil
}

// Update merges the supplied fields into the stored account and persists the
// result.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*entity.CustomerAccount, error) {
	ctx, span := serviceTracer.Start(ctx, "AccountService.Update", trace.WithAttributes(attribute.Int64("account.id", id)))
	defer span.End()

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, errorbank.NotFound("CustomerAccount not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load customer account", errorbank.WithCause(err))
	}

	if params.Username != nil {
		account.Username = *params.Username
	}
	if params.Password != nil {
		account.Password = *params.Password
	}

	if err := s.repo.Update(ctx, account); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, errorbank.Conflict(conflictMessage)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to update customer account", errorbank.WithCause(err))
	}
	return account, nil
}

// Delete removes a customer account by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "AccountService.Delete", trace.WithAttributes(attribute.Int64("account.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errorbank.NotFound("CustomerAccount not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to delete customer account", errorbank.WithCause(err))
	}

	if s.logger != nil {
		s.logger.Info("customer account deleted", zap.Int64("id", id))
	}
	return nil
}
