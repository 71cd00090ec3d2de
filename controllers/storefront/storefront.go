package storefrontControllers

import (
	"net/http"

	"github.com/devvitrinefrutal-del/vitrine-api/catalog"
	"github.com/gin-gonic/gin"
)

// GET /stores
func ListStores(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cache.Stores())
	}
}

// GET /stores/:storeID
func GetStore(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, found := cache.StoreByID(c.Param("storeID"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"store":    store,
			"products": cache.ProductsByStore(store.ID),
		})
	}
}

// GET /products
func ListProducts(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if storeID := c.Query("store_id"); storeID != "" {
			c.JSON(http.StatusOK, cache.ProductsByStore(storeID))
			return
		}
		c.JSON(http.StatusOK, cache.Products())
	}
}

// GET /services
func ListServices(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cache.Services())
	}
}

// POST /catalog/refresh
//
// There is no realtime sync with the backend; clients trigger an explicit
// refetch when they want fresh data.
func RefreshCatalog(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cache.Refresh(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh catalog"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Catalog refreshed"})
	}
}
