package orderControllers

import (
	"errors"
	"net/http"

	"github.com/devvitrinefrutal-del/vitrine-api/fulfillment"
	"github.com/devvitrinefrutal-del/vitrine-api/gateway"
	"github.com/devvitrinefrutal-del/vitrine-api/middleware"
	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/gin-gonic/gin"
)

// boardScope resolves which store the acting merchant may manage. Admins
// manage any store; merchants only their linked one (which may still be
// empty if linkage has not resolved).
func boardScope(c *gin.Context) (storeID string, ok bool) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	if actor.Role == models.RoleAdmin {
		return "", true
	}
	if actor.LinkedStoreID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "No store linked to this account"})
		return "", false
	}
	return actor.LinkedStoreID, true
}

// GET /dashboard/orders
func DashboardOrders(board *fulfillment.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := boardScope(c)
		if !ok {
			return
		}
		if storeID == "" {
			storeID = c.Query("store_id")
			if storeID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "store_id is required"})
				return
			}
		}
		lanes, err := board.StoreLanes(c.Request.Context(), storeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, lanes)
	}
}

// GET /admin/orders (API-key surface; no session actor involved)
func AdminOrders(board *fulfillment.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.Query("store_id")
		if storeID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "store_id is required"})
			return
		}
		lanes, err := board.StoreLanes(c.Request.Context(), storeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, lanes)
	}
}

// PUT /orders/:orderID/advance
func AdvanceOrder(board *fulfillment.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := boardScope(c)
		if !ok {
			return
		}
		order, err := board.Advance(c.Request.Context(), c.Param("orderID"), storeID)
		if err != nil {
			respondBoardError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /orders/:orderID/cancel
func CancelOrder(board *fulfillment.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := boardScope(c)
		if !ok {
			return
		}
		order, err := board.Cancel(c.Request.Context(), c.Param("orderID"), storeID)
		if err != nil {
			respondBoardError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/mine
func MyOrders(gw *gateway.StoreGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.ActorFrom(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orders, err := gw.OrdersByClient(c.Request.Context(), actor.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, fulfillment.ErrNotStoreOrder):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, fulfillment.ErrTerminalStatus), errors.Is(err, fulfillment.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
