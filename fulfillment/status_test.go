package fulfillment

import (
	"testing"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/stretchr/testify/assert"
)

func TestNextStatus_SingleForwardStep(t *testing.T) {
	next, ok := NextStatus(models.OrderStatusPending)
	assert.True(t, ok)
	assert.Equal(t, models.OrderStatusPreparing, next)

	next, ok = NextStatus(models.OrderStatusPreparing)
	assert.True(t, ok)
	assert.Equal(t, models.OrderStatusEnRoute, next)

	next, ok = NextStatus(models.OrderStatusEnRoute)
	assert.True(t, ok)
	assert.Equal(t, models.OrderStatusDelivered, next)
}

func TestNextStatus_NoStepFromTerminal(t *testing.T) {
	_, ok := NextStatus(models.OrderStatusDelivered)
	assert.False(t, ok)

	_, ok = NextStatus(models.OrderStatusCancelled)
	assert.False(t, ok)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.OrderStatusDelivered))
	assert.True(t, IsTerminal(models.OrderStatusCancelled))
	assert.False(t, IsTerminal(models.OrderStatusPending))
	assert.False(t, IsTerminal(models.OrderStatusPreparing))
	assert.False(t, IsTerminal(models.OrderStatusEnRoute))
}

func TestCanTransition_NeverSkipsOrMovesBackward(t *testing.T) {
	assert.True(t, CanTransition(models.OrderStatusPending, models.OrderStatusPreparing))
	assert.True(t, CanTransition(models.OrderStatusPreparing, models.OrderStatusEnRoute))
	assert.True(t, CanTransition(models.OrderStatusEnRoute, models.OrderStatusDelivered))

	assert.False(t, CanTransition(models.OrderStatusPending, models.OrderStatusEnRoute))
	assert.False(t, CanTransition(models.OrderStatusPending, models.OrderStatusDelivered))
	assert.False(t, CanTransition(models.OrderStatusPreparing, models.OrderStatusPending))
	assert.False(t, CanTransition(models.OrderStatusDelivered, models.OrderStatusEnRoute))
}

func TestCanTransition_CancelFromAnyNonTerminal(t *testing.T) {
	assert.True(t, CanTransition(models.OrderStatusPending, models.OrderStatusCancelled))
	assert.True(t, CanTransition(models.OrderStatusPreparing, models.OrderStatusCancelled))
	assert.True(t, CanTransition(models.OrderStatusEnRoute, models.OrderStatusCancelled))

	assert.False(t, CanTransition(models.OrderStatusDelivered, models.OrderStatusCancelled))
	assert.False(t, CanTransition(models.OrderStatusCancelled, models.OrderStatusCancelled))
}
