package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/emporia/pkg/errorbank"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBuildDataAsIs(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).WithData(map[string]string{"name": "Widget"}).Build()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Widget"}`, rec.Body.String())
}

func TestBuildMessageWrapsInObject(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).WithMessage("Customer deleted successfully").Build()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Customer deleted successfully"}`, rec.Body.String())
}

func TestBuildStatusOverride(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).WithStatus(http.StatusCreated).WithData(map[string]int{"id": 1}).Build()
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBuildErrorUsesKindStatus(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).WithError(errorbank.NotFound("Product not found")).Build()
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Product not found"}`, rec.Body.String())
}

func TestBuildErrorStatusOverride(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).
		WithStatus(http.StatusBadRequest).
		WithError(errorbank.Conflict("Error updating product")).
		Build()
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Error updating product"}`, rec.Body.String())
}

func TestBuildUnknownErrorIs500(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).WithError(errors.New("boom")).Build()
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal error"}`, rec.Body.String())
}
