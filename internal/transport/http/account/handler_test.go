package account

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

	"github.com/Additional-Code/emporia/internal/database"
	"github.com/Additional-Code/emporia/internal/entity"
	service "github.com/Additional-Code/emporia/internal/service/account"
)

type fakeRepo struct {
	nextID   int64
	accounts map[int64]entity.CustomerAccount
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: make(map[int64]entity.CustomerAccount)}
}

func (f *fakeRepo) Create(_ context.Context, account *entity.CustomerAccount) error {
	for _, existing := range f.accounts {
		if existing.Username == account.Username {
			return database.ErrConflict
		}
	}
	f.nextID++
	account.ID = f.nextID
	f.accounts[account.ID] = *account
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*entity.CustomerAccount, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &account, nil
}

func (f *fakeRepo) Update(_ context.Context, account *entity.CustomerAccount) error {
	f.accounts[account.ID] = *account
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.accounts[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.accounts, id)
	return nil
}

func newTestServer() *echo.Echo {
	e := echo.New()
	svc := service.NewService(service.Params{Repository: newFakeRepo(), Logger: zap.NewNop()})
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

func TestAccountLifecycle(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/customeraccounts", `{"username":"ada","password":"secret","customer_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "ada", created["username"])
	assert.Equal(t, "secret", created["password"])
	assert.Equal(t, float64(1), created["customer_id"])
	assert.Equal(t, true, created["is_active"])
	assert.NotEmpty(t, created["created_at"])

	rec = doJSON(e, http.MethodPost, "/customeraccounts", `{"username":"ada","password":"other","customer_id":2}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"CustomerAccount with this username already exists"}`, rec.Body.String())

	rec = doJSON(e, http.MethodPut, "/customeraccounts/1", `{"password":"rotated"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "ada", updated["username"])
	assert.Equal(t, "rotated", updated["password"])

	rec = doJSON(e, http.MethodDelete, "/customeraccounts/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"CustomerAccount deleted successfully"}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/customeraccounts/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"CustomerAccount not found"}`, rec.Body.String())
}

func TestCreateAccountRequiresAllFields(t *testing.T) {
	e := newTestServer()

	for _, body := range []string{
		`{"password":"secret","customer_id":1}`,
		`{"username":"ada","customer_id":1}`,
		`{"username":"ada","password":"secret"}`,
	} {
		rec := doJSON(e, http.MethodPost, "/customeraccounts", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		assert.JSONEq(t, `{"message":"username, password and customer_id are required"}`, rec.Body.String())
	}
}

func TestGetAccountRejectsNonNumericID(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodGet, "/customeraccounts/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
