package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOrder persists a new order. Orders are always inserted as pending;
// the fulfillment board owns every later status change.
func (g *StoreGateway) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.Status = models.OrderStatusPending
	order.CreatedAt = time.Now()
	return g.db.WithContext(ctx).Create(order).Error
}

func (g *StoreGateway) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := g.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (g *StoreGateway) OrdersByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	var orders []models.Order
	if err := g.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (g *StoreGateway) OrdersByClient(ctx context.Context, clientID string) ([]models.Order, error) {
	var orders []models.Order
	if err := g.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (g *StoreGateway) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	result := g.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
