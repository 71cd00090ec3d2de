package fulfillment

import (
	"errors"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrTerminalStatus    = errors.New("order is in a terminal status")
	ErrNotStoreOrder     = errors.New("order belongs to another store")
)

// NextStatus returns the single forward step from status. The flow never
// skips a state and never moves backward; cancel is handled separately.
func NextStatus(status models.OrderStatus) (models.OrderStatus, bool) {
	switch status {
	case models.OrderStatusPending:
		return models.OrderStatusPreparing, true
	case models.OrderStatusPreparing:
		return models.OrderStatusEnRoute, true
	case models.OrderStatusEnRoute:
		return models.OrderStatusDelivered, true
	default:
		return "", false
	}
}

// IsTerminal reports whether no further transition is permitted.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.OrderStatusDelivered || status == models.OrderStatusCancelled
}

// CanTransition reports whether from→to is a legal single step: the one
// forward transition, or a cancel from any non-terminal status.
func CanTransition(from, to models.OrderStatus) bool {
	if IsTerminal(from) {
		return false
	}
	if to == models.OrderStatusCancelled {
		return true
	}
	next, ok := NextStatus(from)
	return ok && next == to
}
