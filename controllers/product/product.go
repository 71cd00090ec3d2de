package productController

import (
	"errors"
	"net/http"

	"github.com/devvitrinefrutal-del/vitrine-api/catalog"
	"github.com/devvitrinefrutal-del/vitrine-api/gateway"
	"github.com/devvitrinefrutal-del/vitrine-api/middleware"
	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"required"`
	Stock       int      `json:"stock"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
}

// merchantStore resolves the store the acting merchant manages. Admins may
// target any store through ?store_id.
func merchantStore(c *gin.Context) (string, bool) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	if actor.Role == models.RoleAdmin {
		storeID := c.Query("store_id")
		if storeID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "store_id is required"})
			return "", false
		}
		return storeID, true
	}
	if actor.LinkedStoreID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "No store linked to this account"})
		return "", false
	}
	return actor.LinkedStoreID, true
}

// POST /dashboard/products
func CreateProduct(gw *gateway.StoreGateway, cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := merchantStore(c)
		if !ok {
			return
		}
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}

		product := models.Product{
			ID:          uuid.NewString(),
			StoreID:     storeID,
			Name:        input.Name,
			Price:       input.Price,
			Stock:       input.Stock,
			Description: input.Description,
			ImageRef:    input.Image,
			ImageRefs:   input.Images,
		}
		if err := gw.CreateProduct(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create product"})
			return
		}
		cache.Upsert(product)
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /dashboard/products/:productID
func UpdateProduct(gw *gateway.StoreGateway, cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := merchantStore(c)
		if !ok {
			return
		}
		product, err := gw.ProductByID(c.Request.Context(), c.Param("productID"))
		if err != nil {
			if errors.Is(err, gateway.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch product"})
			return
		}
		if product.StoreID != storeID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Product belongs to another store"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}

		product.Name = input.Name
		product.Price = input.Price
		product.Stock = input.Stock
		product.Description = input.Description
		product.ImageRef = input.Image
		product.ImageRefs = input.Images
		if err := gw.UpdateProduct(c.Request.Context(), product); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update product"})
			return
		}
		cache.Upsert(*product)
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /dashboard/products/:productID
func DeleteProduct(gw *gateway.StoreGateway, cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := merchantStore(c)
		if !ok {
			return
		}
		product, err := gw.ProductByID(c.Request.Context(), c.Param("productID"))
		if err != nil {
			if errors.Is(err, gateway.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch product"})
			return
		}
		if product.StoreID != storeID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Product belongs to another store"})
			return
		}
		if err := gw.DeleteProduct(c.Request.Context(), product.ID); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete product"})
			return
		}
		if err := cache.Refresh(c.Request.Context()); err != nil {
			// Next manual refresh will converge the cache.
			c.JSON(http.StatusOK, gin.H{"message": "Product deleted, catalog refresh pending"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
