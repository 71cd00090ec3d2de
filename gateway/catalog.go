package gateway

import (
	"context"
	"errors"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (g *StoreGateway) Stores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := g.db.WithContext(ctx).Order("name ASC").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (g *StoreGateway) StoreByID(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	if err := g.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

func (g *StoreGateway) Services(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := g.db.WithContext(ctx).Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (g *StoreGateway) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := g.db.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (g *StoreGateway) ProductsByStore(ctx context.Context, storeID string) ([]models.Product, error) {
	var products []models.Product
	if err := g.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (g *StoreGateway) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := g.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (g *StoreGateway) CreateProduct(ctx context.Context, product *models.Product) error {
	return g.db.WithContext(ctx).Create(product).Error
}

func (g *StoreGateway) UpdateProduct(ctx context.Context, product *models.Product) error {
	return g.db.WithContext(ctx).Save(product).Error
}

func (g *StoreGateway) DeleteProduct(ctx context.Context, id string) error {
	result := g.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock lowers a product's stock by quantity, floored at zero in a
// single statement so the floor holds under concurrent checkouts.
func (g *StoreGateway) DecrementStock(ctx context.Context, productID string, quantity int) error {
	result := g.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("GREATEST(stock - ?, 0)", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// StoreByOwner returns the store already linked to ownerID, or (nil, nil).
func (g *StoreGateway) StoreByOwner(ctx context.Context, ownerID string) (*models.Store, error) {
	var store models.Store
	err := g.db.WithContext(ctx).First(&store, "owner_id = ?", ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// ServiceByProvider returns the service already linked to providerID, or
// (nil, nil).
func (g *StoreGateway) ServiceByProvider(ctx context.Context, providerID string) (*models.Service, error) {
	var service models.Service
	err := g.db.WithContext(ctx).First(&service, "provider_id = ?", providerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

// ClaimStoreByEmail assigns ownership of the store registered under email,
// if one exists and nobody owns it yet. Returns (nil, nil) when there is
// nothing to claim.
func (g *StoreGateway) ClaimStoreByEmail(ctx context.Context, email, ownerID string) (*models.Store, error) {
	var claimed *models.Store
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var store models.Store
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ? AND (owner_id IS NULL OR owner_id = '')", email).
			First(&store).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		store.OwnerID = ownerID
		if err := tx.Save(&store).Error; err != nil {
			return err
		}
		claimed = &store
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// ClaimServiceByEmail is the service-provider counterpart of ClaimStoreByEmail.
func (g *StoreGateway) ClaimServiceByEmail(ctx context.Context, email, providerID string) (*models.Service, error) {
	var claimed *models.Service
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var service models.Service
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ? AND (provider_id IS NULL OR provider_id = '')", email).
			First(&service).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		service.ProviderID = providerID
		if err := tx.Save(&service).Error; err != nil {
			return err
		}
		claimed = &service
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}
