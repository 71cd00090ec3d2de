package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/devvitrinefrutal-del/vitrine-api/cart"
	"github.com/devvitrinefrutal-del/vitrine-api/catalog"
	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type decrementCall struct {
	ProductID string
	Quantity  int
}

// mockGateway implements Gateway for testing.
type mockGateway struct {
	store         *models.Store
	storeErr      error
	createErr     error
	createdOrder  *models.Order
	decrementErrs map[string]error
	decrements    []decrementCall
}

func (m *mockGateway) StoreByID(_ context.Context, _ string) (*models.Store, error) {
	return m.store, m.storeErr
}

func (m *mockGateway) CreateOrder(_ context.Context, order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	order.ID = "order-1"
	order.Status = models.OrderStatusPending
	m.createdOrder = order
	return nil
}

func (m *mockGateway) DecrementStock(_ context.Context, productID string, quantity int) error {
	if err := m.decrementErrs[productID]; err != nil {
		return err
	}
	m.decrements = append(m.decrements, decrementCall{ProductID: productID, Quantity: quantity})
	return nil
}

// fakeSource feeds a catalog cache used as the stock mirror.
type fakeSource struct {
	products []models.Product
}

func (f *fakeSource) Stores(_ context.Context) ([]models.Store, error) { return nil, nil }

func (f *fakeSource) Products(_ context.Context) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeSource) Services(_ context.Context) ([]models.Service, error) { return nil, nil }

type mockMirror struct {
	deltas map[string]int
}

func (m *mockMirror) ApplyStockDelta(productID string, delta int) {
	if m.deltas == nil {
		m.deltas = make(map[string]int)
	}
	m.deltas[productID] += delta
}

func storeFixture() *models.Store {
	return &models.Store{
		ID:          "store-a",
		Name:        "Mercearia Central",
		Phone:       "+55 (34) 99999-0000",
		DeliveryFee: 5.00,
	}
}

func actorFixture() *models.Actor {
	return &models.Actor{ID: "client-1", Name: "Maria", Role: models.RoleCustomer}
}

func cartWith(t *testing.T, products ...models.Product) *cart.Engine {
	t.Helper()
	ctx := context.Background()
	engine := cart.NewEngine(ctx, "s1", nil)
	for _, p := range products {
		require.NoError(t, engine.Add(ctx, p))
	}
	return engine
}

func newTestPipeline(gw *mockGateway, mirror StockMirror) *Pipeline {
	return NewPipeline(gw, mirror, nil, zap.NewNop())
}

func deliveryInput() Input {
	return Input{
		DeliveryMethod: models.DeliveryMethodDelivery,
		Address:        "Rua das Flores, 123",
		PaymentMethod:  models.PaymentMethodCash,
		CustomerPhone:  "+55 34 98888-0000",
	}
}

func TestFinish_RequiresActor(t *testing.T) {
	gw := &mockGateway{store: storeFixture()}
	pipeline := newTestPipeline(gw, &mockMirror{})
	engine := cartWith(t, models.Product{ID: "p1", StoreID: "store-a", Price: 10, Stock: 5})

	_, err := pipeline.Finish(context.Background(), "s1", engine, nil, deliveryInput())

	assert.True(t, errors.Is(err, ErrUnauthenticated))
	assert.Equal(t, 1, engine.Len())
	assert.Nil(t, gw.createdOrder)
}

func TestFinish_RequiresNonEmptyCart(t *testing.T) {
	gw := &mockGateway{store: storeFixture()}
	pipeline := newTestPipeline(gw, &mockMirror{})
	engine := cartWith(t)

	_, err := pipeline.Finish(context.Background(), "s1", engine, actorFixture(), deliveryInput())

	assert.True(t, errors.Is(err, ErrEmptyCart))
	assert.Nil(t, gw.createdOrder)
}

func TestFinish_RequiresAddressForDelivery(t *testing.T) {
	gw := &mockGateway{store: storeFixture()}
	pipeline := newTestPipeline(gw, &mockMirror{})
	engine := cartWith(t, models.Product{ID: "p1", StoreID: "store-a", Price: 10, Stock: 5})

	input := deliveryInput()
	input.Address = ""
	_, err := pipeline.Finish(context.Background(), "s1", engine, actorFixture(), input)

	assert.True(t, errors.Is(err, ErrAddressRequired))
	assert.Equal(t, 1, engine.Len())
}

func TestFinish_InsertFailureHasNoSideEffects(t *testing.T) {
	gw := &mockGateway{
		store:     storeFixture(),
		createErr: errors.New("backend rejected the insert"),
	}
	mirror := &mockMirror{}
	pipeline := newTestPipeline(gw, mirror)
	engine := cartWith(t,
		models.Product{ID: "p1", StoreID: "store-a", Price: 10, Stock: 5},
		models.Product{ID: "p2", StoreID: "store-a", Price: 4, Stock: 5},
	)

	_, err := pipeline.Finish(context.Background(), "s1", engine, actorFixture(), deliveryInput())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create order")
	// The commit point failed: cart intact, stock untouched, safe to retry.
	assert.Equal(t, 2, engine.Len())
	assert.Empty(t, gw.decrements)
	assert.Empty(t, mirror.deltas)
}

func TestFinish_DeliveryOrderEndToEnd(t *testing.T) {
	ctx := context.Background()
	gw := &mockGateway{store: storeFixture()}
	mirror := &mockMirror{}
	pipeline := newTestPipeline(gw, mirror)

	engine := cart.NewEngine(ctx, "s1", nil)
	p1 := models.Product{ID: "p1", StoreID: "store-a", Name: "Queijo", Price: 10.00, Stock: 10}
	require.NoError(t, engine.Add(ctx, p1))
	require.NoError(t, engine.UpdateQuantity(ctx, "p1", 2))

	result, err := pipeline.Finish(ctx, "s1", engine, actorFixture(), deliveryInput())
	require.NoError(t, err)

	assert.InDelta(t, 30.00, result.Quote.Subtotal, 0.001)
	assert.InDelta(t, 5.00, result.Quote.DeliveryFee, 0.001)
	assert.InDelta(t, 35.00, result.Quote.Total, 0.001)

	require.NotNil(t, gw.createdOrder)
	assert.Equal(t, models.OrderStatusPending, gw.createdOrder.Status)
	assert.InDelta(t, 35.00, gw.createdOrder.Total, 0.001)
	assert.Equal(t, "store-a", gw.createdOrder.StoreID)
	assert.Equal(t, "client-1", gw.createdOrder.ClientID)
	require.Len(t, gw.createdOrder.Items, 1)
	assert.Equal(t, 3, gw.createdOrder.Items[0].Quantity)

	require.Len(t, gw.decrements, 1)
	assert.Equal(t, decrementCall{ProductID: "p1", Quantity: 3}, gw.decrements[0])
	assert.Equal(t, -3, mirror.deltas["p1"])

	assert.Equal(t, 0, engine.Len())
	assert.Contains(t, result.WhatsAppURL, "wa.me/5534999990000")
}

func TestFinish_PickupSkipsDeliveryFee(t *testing.T) {
	gw := &mockGateway{store: storeFixture()}
	pipeline := newTestPipeline(gw, &mockMirror{})
	engine := cartWith(t, models.Product{ID: "p1", StoreID: "store-a", Price: 10, Stock: 5})

	input := Input{
		DeliveryMethod: models.DeliveryMethodPickup,
		PaymentMethod:  models.PaymentMethodPix,
	}
	result, err := pipeline.Finish(context.Background(), "s1", engine, actorFixture(), input)
	require.NoError(t, err)

	assert.InDelta(t, 0, result.Quote.DeliveryFee, 0.001)
	assert.InDelta(t, 10.00, result.Quote.Total, 0.001)
}

func TestFinish_PartialDecrementFailureKeepsGoing(t *testing.T) {
	gw := &mockGateway{
		store:         storeFixture(),
		decrementErrs: map[string]error{"p1": errors.New("connection reset")},
	}
	mirror := &mockMirror{}
	pipeline := newTestPipeline(gw, mirror)
	engine := cartWith(t,
		models.Product{ID: "p1", StoreID: "store-a", Price: 10, Stock: 5},
		models.Product{ID: "p2", StoreID: "store-a", Price: 4, Stock: 5},
	)

	result, err := pipeline.Finish(context.Background(), "s1", engine, actorFixture(), deliveryInput())
	require.NoError(t, err)

	// The order stands and the cart is cleared even though p1's decrement
	// failed; only p2's stock was mirrored.
	require.NotNil(t, result.Order)
	assert.Equal(t, 0, engine.Len())
	require.Len(t, gw.decrements, 1)
	assert.Equal(t, "p2", gw.decrements[0].ProductID)
	assert.NotContains(t, mirror.deltas, "p1")
	assert.Equal(t, -1, mirror.deltas["p2"])
}

func TestFinish_MirroredStockFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	gw := &mockGateway{store: storeFixture()}
	source := &fakeSource{products: []models.Product{
		{ID: "p1", StoreID: "store-a", Name: "Queijo", Price: 10, Stock: 2},
	}}
	mirror := catalog.NewCache(source)
	require.NoError(t, mirror.Refresh(ctx))
	pipeline := newTestPipeline(gw, mirror)

	engine := cart.NewEngine(ctx, "s1", nil)
	require.NoError(t, engine.Add(ctx, source.products[0]))
	require.NoError(t, engine.UpdateQuantity(ctx, "p1", 4))

	_, err := pipeline.Finish(ctx, "s1", engine, actorFixture(), deliveryInput())
	require.NoError(t, err)

	product, ok := mirror.ProductByID("p1")
	require.True(t, ok)
	assert.Equal(t, 0, product.Stock)
}

func TestFinish_RejectsConcurrentSubmission(t *testing.T) {
	gw := &mockGateway{store: storeFixture()}
	pipeline := newTestPipeline(gw, &mockMirror{})
	engine := cartWith(t, models.Product{ID: "p1", StoreID: "store-a", Price: 10, Stock: 5})

	require.True(t, pipeline.begin("s1"))
	assert.True(t, pipeline.Finishing("s1"))

	_, err := pipeline.Finish(context.Background(), "s1", engine, actorFixture(), deliveryInput())
	assert.True(t, errors.Is(err, ErrCheckoutInFlight))

	pipeline.end("s1")
	assert.False(t, pipeline.Finishing("s1"))
}

func TestComputeQuote_PixDiscountIsDisplayOnly(t *testing.T) {
	quote := ComputeQuote(100, storeFixture(), models.DeliveryMethodDelivery, models.PaymentMethodPix)

	assert.InDelta(t, 105.00, quote.Total, 0.001)
	assert.InDelta(t, 99.75, quote.DisplayTotal, 0.001)

	cash := ComputeQuote(100, storeFixture(), models.DeliveryMethodDelivery, models.PaymentMethodCash)
	assert.InDelta(t, cash.Total, cash.DisplayTotal, 0.001)
}

func TestObservationWithChange(t *testing.T) {
	input := Input{
		PaymentMethod: models.PaymentMethodCash,
		ChangeFor:     50,
		Observation:   "Sem cebola",
	}
	assert.Equal(t, "Sem cebola | Troco para R$ 50.00", observationWithChange(input))

	input.Observation = ""
	assert.Equal(t, "Troco para R$ 50.00", observationWithChange(input))

	input.PaymentMethod = models.PaymentMethodPix
	assert.Equal(t, "", observationWithChange(input))
}
