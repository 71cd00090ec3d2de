package fulfillment

import (
	"context"
	"errors"
	"testing"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGateway implements Gateway for testing.
type mockGateway struct {
	orders    map[string]*models.Order
	updateErr error
	updated   map[string]models.OrderStatus
}

func newMockGateway(orders ...*models.Order) *mockGateway {
	m := &mockGateway{
		orders:  make(map[string]*models.Order),
		updated: make(map[string]models.OrderStatus),
	}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockGateway) OrderByID(_ context.Context, id string) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	clone := *order
	return &clone, nil
}

func (m *mockGateway) OrdersByStore(_ context.Context, storeID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.StoreID == storeID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockGateway) UpdateOrderStatus(_ context.Context, orderID string, status models.OrderStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.orders[orderID].Status = status
	m.updated[orderID] = status
	return nil
}

func orderFixture(id string, status models.OrderStatus) *models.Order {
	return &models.Order{ID: id, StoreID: "store-a", Status: status}
}

func TestAdvance_MovesOneStepForward(t *testing.T) {
	gw := newMockGateway(orderFixture("o1", models.OrderStatusPending))
	board := NewBoard(gw)

	order, err := board.Advance(context.Background(), "o1", "store-a")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPreparing, order.Status)
	assert.Equal(t, models.OrderStatusPreparing, gw.updated["o1"])
}

func TestAdvance_RejectsTerminalStatus(t *testing.T) {
	gw := newMockGateway(
		orderFixture("delivered", models.OrderStatusDelivered),
		orderFixture("cancelled", models.OrderStatusCancelled),
	)
	board := NewBoard(gw)

	_, err := board.Advance(context.Background(), "delivered", "store-a")
	assert.True(t, errors.Is(err, ErrTerminalStatus))

	_, err = board.Advance(context.Background(), "cancelled", "store-a")
	assert.True(t, errors.Is(err, ErrTerminalStatus))
	assert.Empty(t, gw.updated)
}

func TestAdvance_FailedWriteLeavesOrderUntouched(t *testing.T) {
	gw := newMockGateway(orderFixture("o1", models.OrderStatusPending))
	gw.updateErr = errors.New("connection reset")
	board := NewBoard(gw)

	_, err := board.Advance(context.Background(), "o1", "store-a")
	require.Error(t, err)

	assert.Equal(t, models.OrderStatusPending, gw.orders["o1"].Status)
}

func TestAdvance_ScopedToActingStore(t *testing.T) {
	gw := newMockGateway(orderFixture("o1", models.OrderStatusPending))
	board := NewBoard(gw)

	_, err := board.Advance(context.Background(), "o1", "store-b")
	assert.True(t, errors.Is(err, ErrNotStoreOrder))

	// Admins pass an empty store ID and reach any order.
	order, err := board.Advance(context.Background(), "o1", "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPreparing, order.Status)
}

func TestCancel_FromEachNonTerminalStatus(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusPreparing,
		models.OrderStatusEnRoute,
	} {
		gw := newMockGateway(orderFixture("o1", status))
		board := NewBoard(gw)

		order, err := board.Cancel(context.Background(), "o1", "store-a")
		require.NoError(t, err, "cancel from %s", status)
		assert.Equal(t, models.OrderStatusCancelled, order.Status)
	}
}

func TestCancel_RejectsTerminalStatus(t *testing.T) {
	gw := newMockGateway(orderFixture("o1", models.OrderStatusDelivered))
	board := NewBoard(gw)

	_, err := board.Cancel(context.Background(), "o1", "store-a")
	assert.True(t, errors.Is(err, ErrTerminalStatus))
}

func TestPartitionLanes_PureFilter(t *testing.T) {
	orders := []models.Order{
		{ID: "o1", Status: models.OrderStatusPending},
		{ID: "o2", Status: models.OrderStatusPreparing},
		{ID: "o3", Status: models.OrderStatusPending},
		{ID: "o4", Status: models.OrderStatusEnRoute},
		{ID: "o5", Status: models.OrderStatusDelivered},
		{ID: "o6", Status: models.OrderStatusCancelled},
	}

	lanes := PartitionLanes(orders)

	require.Len(t, lanes.Pending, 2)
	assert.Equal(t, "o1", lanes.Pending[0].ID)
	assert.Equal(t, "o3", lanes.Pending[1].ID)
	assert.Len(t, lanes.Preparing, 1)
	assert.Len(t, lanes.EnRoute, 1)
	assert.Len(t, lanes.Delivered, 1)
	assert.Len(t, lanes.Cancelled, 1)

	total := len(lanes.Pending) + len(lanes.Preparing) + len(lanes.EnRoute) +
		len(lanes.Delivered) + len(lanes.Cancelled)
	assert.Equal(t, len(orders), total)
}

func TestPartitionLanes_EmptyInput(t *testing.T) {
	lanes := PartitionLanes(nil)
	assert.Empty(t, lanes.Pending)
	assert.Empty(t, lanes.Cancelled)
}
