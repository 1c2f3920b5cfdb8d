package product

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/emporia/internal/config"
	"github.com/Additional-Code/emporia/internal/database"
	"github.com/Additional-Code/emporia/internal/entity"
	"github.com/Additional-Code/emporia/internal/messaging"
	"github.com/Additional-Code/emporia/pkg/errorbank"
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

type capturingPublisher struct {
	published [][]byte
}

func (c *capturingPublisher) Publish(_ context.Context, _ []byte, value []byte) error {
	c.published = append(c.published, value)
	return nil
}

func (c *capturingPublisher) Consume(ctx context.Context, _ messaging.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (c *capturingPublisher) Topic() string { return "inventory.events" }

func newService(repo Repository, publisher messaging.Client) *Service {
	cfg := config.Config{
		Messaging: config.Messaging{
			Enabled: publisher != nil,
			Kafka:   config.Kafka{Topic: "inventory.events"},
		},
	}
	return NewService(Params{
		Repository: repo,
		Config:     cfg,
		Logger:     zap.NewNop(),
		Publisher:  publisher,
	})
}

func TestRestockRoundTripRestoresStock(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, nil)
	ctx := context.Background()

	created := &entity.Product{Name: "Widget", Price: 9.99, StockQuantity: 10}
	require.NoError(t, svc.Create(ctx, created))

	up, err := svc.Restock(ctx, created.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), up.StockQuantity)

	down, err := svc.Restock(ctx, created.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(10), down.StockQuantity)
}

func TestRestockAllowsNegativeStock(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, nil)
	ctx := context.Background()

	created := &entity.Product{Name: "Widget", Price: 9.99, StockQuantity: 2}
	require.NoError(t, svc.Create(ctx, created))

	product, err := svc.Restock(ctx, created.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), product.StockQuantity)
}

func TestRestockMissingProductNotFound(t *testing.T) {
	svc := newService(newFakeRepo(), nil)

	_, err := svc.Restock(context.Background(), 42, 5)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestRestockPersistenceFailureIsBadRequest(t *testing.T) {
	repo := newFakeRepo()
	repo.restockErr = database.ErrConflict
	svc := newService(repo, nil)

	_, err := svc.Restock(context.Background(), 1, 5)
	require.Error(t, err)
	appErr := errorbank.From(err)
	assert.Equal(t, errorbank.KindBadRequest, appErr.Kind())
	assert.Equal(t, "Error restocking product", appErr.Message())
}

func TestRestockPublishesEvent(t *testing.T) {
	repo := newFakeRepo()
	publisher := &capturingPublisher{}
	svc := newService(repo, publisher)
	ctx := context.Background()

	created := &entity.Product{Name: "Widget", Price: 9.99, StockQuantity: 10}
	require.NoError(t, svc.Create(ctx, created))

	_, err := svc.Restock(ctx, created.ID, 5)
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	var event RestockedEvent
	require.NoError(t, json.Unmarshal(publisher.published[0], &event))
	assert.Equal(t, created.ID, event.ID)
	assert.Equal(t, "Widget", event.Name)
	assert.Equal(t, int64(15), event.StockQuantity)
	assert.Equal(t, int64(5), event.RestockAmount)
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, nil)
	ctx := context.Background()

	created := &entity.Product{Name: "Widget", Description: "standard", Price: 9.99, StockQuantity: 10}
	require.NoError(t, svc.Create(ctx, created))

	price := 12.50
	updated, err := svc.Update(ctx, created.ID, UpdateParams{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, "standard", updated.Description)
	assert.Equal(t, 12.50, updated.Price)
	assert.Equal(t, int64(10), updated.StockQuantity)
}

func TestUpdatePersistenceFailureIsBadRequest(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, nil)
	ctx := context.Background()

	created := &entity.Product{Name: "Widget", Price: 9.99, StockQuantity: 10}
	require.NoError(t, svc.Create(ctx, created))

	repo.updateErr = database.ErrConflict
	name := "Gadget"
	_, err := svc.Update(ctx, created.ID, UpdateParams{Name: &name})
	require.Error(t, err)
	appErr := errorbank.From(err)
	assert.Equal(t, errorbank.KindBadRequest, appErr.Kind())
	assert.Equal(t, "Error updating product", appErr.Message())
}

func TestListReturnsAllProducts(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, nil)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &entity.Product{Name: "Widget", Price: 1, StockQuantity: 1}))
	require.NoError(t, svc.Create(ctx, &entity.Product{Name: "Gadget", Price: 2, StockQuantity: 2}))

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestDeleteThenGetNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, nil)
	ctx := context.Background()

	created := &entity.Product{Name: "Widget", Price: 9.99, StockQuantity: 10}
	require.NoError(t, svc.Create(ctx, created))

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err := svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}
