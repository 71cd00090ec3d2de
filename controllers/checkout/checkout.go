package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/devvitrinefrutal-del/vitrine-api/cart"
	"github.com/devvitrinefrutal-del/vitrine-api/catalog"
	"github.com/devvitrinefrutal-del/vitrine-api/checkout"
	cartControllers "github.com/devvitrinefrutal-del/vitrine-api/controllers/cart"
	"github.com/devvitrinefrutal-del/vitrine-api/middleware"
	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/gin-gonic/gin"
)

// Broadcaster pushes a freshly created order to dashboard listeners.
type Broadcaster interface {
	BroadcastOrder(order models.Order)
}

// GET /checkout/quote?deliveryMethod=&paymentMethod=
func GetQuote(snapshots cart.SnapshotStore, cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := cartControllers.SessionID(c)
		if sid == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session: login or send X-Guest-ID"})
			return
		}
		engine := cart.NewEngine(c.Request.Context(), sid, snapshots)
		if engine.Len() == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		store, found := cache.StoreByID(engine.OriginStoreID())
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		method := models.DeliveryMethod(c.DefaultQuery("deliveryMethod", string(models.DeliveryMethodDelivery)))
		payment := models.PaymentMethod(c.Query("paymentMethod"))
		c.JSON(http.StatusOK, checkout.ComputeQuote(engine.Total(), &store, method, payment))
	}
}

// POST /checkout
func Finish(pipeline *checkout.Pipeline, snapshots cart.SnapshotStore, broadcaster Broadcaster) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input checkout.Input
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		actor := middleware.ActorFrom(c)
		sid := cartControllers.SessionID(c)
		if sid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		engine := cart.NewEngine(c.Request.Context(), sid, snapshots)

		result, err := pipeline.Finish(c.Request.Context(), sid, engine, actor, input)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrUnauthenticated):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrAddressRequired):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, checkout.ErrCheckoutInFlight):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			}
			return
		}

		if broadcaster != nil {
			broadcaster.BroadcastOrder(*result.Order)
		}
		c.JSON(http.StatusCreated, result)
	}
}
