package product

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/emporia/internal/config"
	"github.com/Additional-Code/emporia/internal/database"
	"github.com/Additional-Code/emporia/internal/entity"
	service "github.com/Additional-Code/emporia/internal/service/product"
)

type fakeRepo struct {
	nextID     int64
	products   map[int64]entity.Product
	updateErr  error
	restockErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: make(map[int64]entity.Product)}
}

func (f *fakeRepo) Create(_ context.Context, product *entity.Product) error {
	for _, existing := range f.products {
		if existing.Name == product.Name {
			return database.ErrConflict
		}
	}
	f.nextID++
	product.ID = f.nextID
	f.products[product.ID] = *product
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &product, nil
}

func (f *fakeRepo) List(_ context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(f.products))
	for _, product := range f.products {
		out = append(out, product)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, product *entity.Product) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.products[product.ID] = *product
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) Restock(_ context.Context, id int64, amount int64) (*entity.Product, error) {
	if f.restockErr != nil {
		return nil, f.restockErr
	}
	product, ok := f.products[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	product.StockQuantity += amount
	f.products[id] = product
	return &product, nil
}

func newTestServer(repo *fakeRepo) *echo.Echo {
	e := echo.New()
	svc := service.NewService(service.Params{
		Repository: repo,
		Config:     config.Config{},
		Logger:     zap.NewNop(),
	})
	Register(e, NewHandler(svc))
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProductLifecycle(t *testing.T) {
	e := newTestServer(newFakeRepo())

	rec := doJSON(e, http.MethodPost, "/products", `{"name":"Widget","price":9.99,"stock_quantity":10}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Widget", created["name"])
	assert.Equal(t, 9.99, created["price"])
	assert.Equal(t, float64(10), created["stock_quantity"])
	assert.Nil(t, created["description"])

	rec = doJSON(e, http.MethodPost, "/products", `{"name":"Widget","price":1,"stock_quantity":1}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"Product with this name already exists"}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPut, "/products/1", `{"price":12.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Widget", updated["name"])
	assert.Equal(t, 12.5, updated["price"])

	rec = doJSON(e, http.MethodDelete, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Product not found"}`, rec.Body.String())
}

func TestListProductsOnBothPaths(t *testing.T) {
	repo := newFakeRepo()
	e := newTestServer(repo)

	doJSON(e, http.MethodPost, "/products", `{"name":"Widget","price":1,"stock_quantity":1}`)
	doJSON(e, http.MethodPost, "/products", `{"name":"Gadget","price":2,"stock_quantity":2}`)

	for _, path := range []string{"/products", "/products/stock"} {
		rec := doJSON(e, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, "path: %s", path)

		var listed []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		assert.Len(t, listed, 2)
	}
}

func TestRestockEndpoint(t *testing.T) {
	e := newTestServer(newFakeRepo())

	doJSON(e, http.MethodPost, "/products", `{"name":"Widget","price":9.99,"stock_quantity":10}`)

	rec := doJSON(e, http.MethodPost, "/products/restock", `{"product_id":1,"restock_amount":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var restocked map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restocked))
	assert.Equal(t, float64(15), restocked["stock_quantity"])
}

func TestRestockMissingProductReturns404(t *testing.T) {
	e := newTestServer(newFakeRepo())

	rec := doJSON(e, http.MethodPost, "/products/restock", `{"product_id":42,"restock_amount":5}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Product not found"}`, rec.Body.String())
}

func TestRestockRequiresProductIDAndAmount(t *testing.T) {
	e := newTestServer(newFakeRepo())

	rec := doJSON(e, http.MethodPost, "/products/restock", `{"restock_amount":5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"product_id and restock_amount are required"}`, rec.Body.String())
}

func TestRestockPersistenceFailureReturns400(t *testing.T) {
	repo := newFakeRepo()
	e := newTestServer(repo)

	doJSON(e, http.MethodPost, "/products", `{"name":"Widget","price":9.99,"stock_quantity":10}`)
	repo.restockErr = database.ErrConflict

	rec := doJSON(e, http.MethodPost, "/products/restock", `{"product_id":1,"restock_amount":5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Error restocking product"}`, rec.Body.String())
}

func TestUpdatePersistenceFailureReturns400(t *testing.T) {
	repo := newFakeRepo()
	e := newTestServer(repo)

	doJSON(e, http.MethodPost, "/products", `{"name":"Widget","price":9.99,"stock_quantity":10}`)
	repo.updateErr = database.ErrConflict

	rec := doJSON(e, http.MethodPut, "/products/1", `{"name":"Gadget"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Error updating product"}`, rec.Body.String())
}

func TestCreateProductRequiresFields(t *testing.T) {
	e := newTestServer(newFakeRepo())

	rec := doJSON(e, http.MethodPost, "/products", `{"name":"Widget"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"name, price and stock_quantity are required"}`, rec.Body.String())
}
