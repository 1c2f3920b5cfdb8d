package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/emporia/internal/database"
	"github.com/Additional-Code/emporia/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/emporia/repository/account")

// Repository encapsulates read/write access for customer accounts.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists a new customer account using the write connection.
func (r *Repository) Create(ctx context.Context, account *entity.CustomerAccount) error {
	if account == nil {
		return errors.New("nil customer account")
	}
	ctx, span := repoTracer.Start(ctx, "AccountRepository.Create", trace.WithAttributes(attribute.String("account.username", account.Username)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(account).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		if database.IsConstraintViolation(err) {
			return database.ErrConflict
		}
	}
	return err
}

// GetByID fetches a customer account by primary key using the read replica when available.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.CustomerAccount, error) {
	ctx, span := repoTracer.Start(ctx, "AccountRepository.GetByID", trace.WithAttributes(attribute.Int64("account.id", id)))
	defer span.End()

	account := new(entity.CustomerAccount)
	err := r.reader.NewSelect().Model(account).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, database.ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return account, nil
}

// Update persists the full account row identified by its primary key.
func (r *Repository) Update(ctx context.Context, account *entity.CustomerAccount) error {
	if account == nil {
		return errors.New("nil customer account")
	}
	ctx, span := repoTracer.Start(ctx, "AccountRepository.Update", trace.WithAttributes(attribute.Int64("account.id", account.ID)))
	defer span.End()

	_, err := r.writer.NewUpdate().Model(account).WherePK().Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		if database.IsConstraintViolation(err) {
			return database.ErrConflict
		}
	}
	return err
}

// Delete removes a customer account row by primary key.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := repoTracer.Start(ctx, "AccountRepository.Delete", trace.WithAttributes(attribute.Int64("account.id", id)))
	defer span.End()

	res, err := r.writer.NewDelete().Model((*entity.CustomerAccount)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		span.SetStatus(codes.Error, "not found")
		return database.ErrNotFound
	}
	return nil
}
