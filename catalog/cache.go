package catalog

import (
	"context"
	"sync"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
)

// Source is the slice of the remote gateway the cache refreshes from.
type Source interface {
	Stores(ctx context.Context) ([]models.Store, error)
	Products(ctx context.Context) ([]models.Product, error)
	Services(ctx context.Context) ([]models.Service, error)
}

// Cache holds the in-memory store/product/service collections the read
// endpoints serve from. There is no background sync; Refresh is the only
// way data moves in, apart from the stock mirror applied by checkout.
type Cache struct {
	mu       sync.RWMutex
	source   Source
	stores   []models.Store
	products []models.Product
	services []models.Service
}

func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Refresh refetches all three collections and swaps them in atomically.
// On any fetch error the previous snapshot stays in place.
func (c *Cache) Refresh(ctx context.Context) error {
	stores, err := c.source.Stores(ctx)
	if err != nil {
		return err
	}
	products, err := c.source.Products(ctx)
	if err != nil {
		return err
	}
	services, err := c.source.Services(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores = stores
	c.products = products
	c.services = services
	return nil
}

func (c *Cache) Stores() []models.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Store, len(c.stores))
	copy(out, c.stores)
	return out
}

func (c *Cache) StoreByID(id string) (models.Store, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, store := range c.stores {
		if store.ID == id {
			return store, true
		}
	}
	return models.Store{}, false
}

func (c *Cache) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Cache) ProductsByStore(storeID string) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Product
	for _, product := range c.products {
		if product.StoreID == storeID {
			out = append(out, product)
		}
	}
	return out
}

func (c *Cache) ProductByID(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, product := range c.products {
		if product.ID == id {
			return product, true
		}
	}
	return models.Product{}, false
}

func (c *Cache) Services() []models.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Service, len(c.services))
	copy(out, c.services)
	return out
}

// ApplyStockDelta mirrors a confirmed remote stock change locally so the UI
// reflects new stock without a refetch. Floored at zero like the remote
// decrement.
func (c *Cache) ApplyStockDelta(productID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == productID {
			stock := c.products[i].Stock + delta
			if stock < 0 {
				stock = 0
			}
			c.products[i].Stock = stock
			return
		}
	}
}

// Upsert mirrors a merchant product create/update after the remote write
// succeeded.
func (c *Cache) Upsert(product models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == product.ID {
			c.products[i] = product
			return
		}
	}
	c.products = append(c.products, product)
}
