package cartControllers

import (
	"errors"
	"net/http"

	"github.com/devvitrinefrutal-del/vitrine-api/cart"
	"github.com/devvitrinefrutal-del/vitrine-api/catalog"
	"github.com/devvitrinefrutal-del/vitrine-api/middleware"
	"github.com/gin-gonic/gin"
)

type AddItemInput struct {
	ProductID string `json:"productId" binding:"required"`
}

type QuantityInput struct {
	ProductID string `json:"productId" binding:"required"`
	Delta     int    `json:"delta" binding:"required"`
}

// SessionID identifies the cart owner: the authenticated actor, or the
// client-chosen guest id for anonymous browsing.
func SessionID(c *gin.Context) string {
	if actor := middleware.ActorFrom(c); actor != nil {
		return actor.ID
	}
	return c.GetHeader("X-Guest-ID")
}

func loadEngine(c *gin.Context, snapshots cart.SnapshotStore) (*cart.Engine, bool) {
	sid := SessionID(c)
	if sid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session: login or send X-Guest-ID"})
		return nil, false
	}
	return cart.NewEngine(c.Request.Context(), sid, snapshots), true
}

func cartResponse(engine *cart.Engine) gin.H {
	return gin.H{
		"items":   engine.Lines(),
		"total":   engine.Total(),
		"storeId": engine.OriginStoreID(),
	}
}

// GET /cart
func GetCart(snapshots cart.SnapshotStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine, ok := loadEngine(c, snapshots)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartResponse(engine))
	}
}

// POST /cart/items
func AddItem(snapshots cart.SnapshotStore, cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, found := cache.ProductByID(input.ProductID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
			return
		}

		engine, ok := loadEngine(c, snapshots)
		if !ok {
			return
		}

		if err := engine.Add(c.Request.Context(), product); err != nil {
			if errors.Is(err, cart.ErrDifferentStore) {
				// The caller must confirm discarding the current cart and
				// clear it before retrying.
				c.JSON(http.StatusConflict, gin.H{
					"error":          "Cart holds items from another store",
					"requires_clear": true,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(engine))
	}
}

// PUT /cart/items/quantity
func UpdateQuantity(snapshots cart.SnapshotStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		engine, ok := loadEngine(c, snapshots)
		if !ok {
			return
		}
		if err := engine.UpdateQuantity(c.Request.Context(), input.ProductID, input.Delta); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(engine))
	}
}

// DELETE /cart/items/:product_id
func RemoveItem(snapshots cart.SnapshotStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine, ok := loadEngine(c, snapshots)
		if !ok {
			return
		}
		if err := engine.Remove(c.Request.Context(), c.Param("product_id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(engine))
	}
}

// DELETE /cart
func ClearCart(snapshots cart.SnapshotStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine, ok := loadEngine(c, snapshots)
		if !ok {
			return
		}
		if err := engine.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
