package fulfillment

import (
	"context"
	"fmt"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
)

// Gateway is the slice of the remote gateway the board writes through.
type Gateway interface {
	OrderByID(ctx context.Context, id string) (*models.Order, error)
	OrdersByStore(ctx context.Context, storeID string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error
}

// Board drives merchant-side order status changes. Every change is
// validated against the current persisted status and applied locally only
// after the remote write succeeds; a failed write leaves both sides as
// they were.
type Board struct {
	gateway Gateway
}

func NewBoard(gateway Gateway) *Board {
	return &Board{gateway: gateway}
}

// Advance moves the order one step forward. storeID scopes the action to
// the acting merchant's store; admins pass "".
func (b *Board) Advance(ctx context.Context, orderID, storeID string) (*models.Order, error) {
	order, err := b.load(ctx, orderID, storeID)
	if err != nil {
		return nil, err
	}
	next, ok := NextStatus(order.Status)
	if !ok {
		if IsTerminal(order.Status) {
			return nil, ErrTerminalStatus
		}
		return nil, ErrInvalidTransition
	}
	if err := b.gateway.UpdateOrderStatus(ctx, orderID, next); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = next
	return order, nil
}

// Cancel is allowed from any non-terminal status.
func (b *Board) Cancel(ctx context.Context, orderID, storeID string) (*models.Order, error) {
	order, err := b.load(ctx, orderID, storeID)
	if err != nil {
		return nil, err
	}
	if IsTerminal(order.Status) {
		return nil, ErrTerminalStatus
	}
	if err := b.gateway.UpdateOrderStatus(ctx, orderID, models.OrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	order.Status = models.OrderStatusCancelled
	return order, nil
}

func (b *Board) load(ctx context.Context, orderID, storeID string) (*models.Order, error) {
	order, err := b.gateway.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if storeID != "" && order.StoreID != storeID {
		return nil, ErrNotStoreOrder
	}
	return order, nil
}

// Lanes groups a store's orders by current status for merchant review.
type Lanes struct {
	Pending   []models.Order `json:"pending"`
	Preparing []models.Order `json:"preparing"`
	EnRoute   []models.Order `json:"enRoute"`
	Delivered []models.Order `json:"delivered"`
	Cancelled []models.Order `json:"cancelled"`
}

// PartitionLanes is a pure filter over the given orders, recomputed on
// every call; fetch order is preserved inside each lane.
func PartitionLanes(orders []models.Order) Lanes {
	var lanes Lanes
	for _, order := range orders {
		switch order.Status {
		case models.OrderStatusPending:
			lanes.Pending = append(lanes.Pending, order)
		case models.OrderStatusPreparing:
			lanes.Preparing = append(lanes.Preparing, order)
		case models.OrderStatusEnRoute:
			lanes.EnRoute = append(lanes.EnRoute, order)
		case models.OrderStatusDelivered:
			lanes.Delivered = append(lanes.Delivered, order)
		case models.OrderStatusCancelled:
			lanes.Cancelled = append(lanes.Cancelled, order)
		}
	}
	return lanes
}

// StoreLanes fetches the store's orders and partitions them.
func (b *Board) StoreLanes(ctx context.Context, storeID string) (Lanes, error) {
	orders, err := b.gateway.OrdersByStore(ctx, storeID)
	if err != nil {
		return Lanes{}, err
	}
	return PartitionLanes(orders), nil
}
