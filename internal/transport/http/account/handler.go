package account

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/emporia/internal/dto"
	"github.com/Additional-Code/emporia/internal/entity"
	"github.com/Additional-Code/emporia/internal/presentation/http/response"
	service "github.com/Additional-Code/emporia/internal/service/account"
	"github.com/Additional-Code/emporia/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/emporia/transport/http/account")

// Handler exposes customer account endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a customer account Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/customeraccounts")
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.deleteByID)
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		Username   *string `json:"username"`
		Password   *string `json:"password"`
		CustomerID *int64  `json:"customer_id"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if payload.Username == nil || payload.Password == nil || payload.CustomerID == nil {
		return b.WithError(errorbank.BadRequest("username, password and customer_id are required")).Build()
	}

	account := &entity.CustomerAccount{
		Username:   *payload.Username,
		Password:   *payload.Password,
		CustomerID: *payload.CustomerID,
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "customeraccounts.create")
	span.SetAttributes(attribute.String("account.username", account.Username))
	defer span.End()

	if err := h.svc.Create(ctx, account); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(toDTO(account)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "customeraccounts.getByID", trace.WithAttributes(attribute.Int64("account.id", id)))
	defer span.End()

	account, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(account)).Build()
}

func (h *Handler) update(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "customeraccounts.update", trace.WithAttributes(attribute.Int64("account.id", id)))
	defer span.End()

	account, err := h.svc.Update(ctx, id, service.UpdateParams{
		Username: payload.Username,
		Password: payload.Password,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(account)).Build()
}

func (h *Handler) deleteByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "customeraccounts.delete", trace.WithAttributes(attribute.Int64("account.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithMessage("CustomerAccount deleted successfully").Build()
}

func toDTO(account *entity.CustomerAccount) dto.CustomerAccountResponse {
	return dto.CustomerAccountResponse{
		ID:         account.ID,
		Username:   account.Username,
		Password:   account.Password,
		CreatedAt:  account.CreatedAt,
		IsActive:   account.IsActive,
		CustomerID: account.CustomerID,
	}
}
