package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type OrderStatus string
type DeliveryMethod string
type PaymentMethod string

const (
	// Order statuses (storefront fulfillment flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, waiting for the store
	OrderStatusPreparing OrderStatus = "preparing" // Store accepted and is preparing
	OrderStatusEnRoute   OrderStatus = "en_route"  // Out for delivery / ready for pickup
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the order
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before completion

	DeliveryMethodDelivery DeliveryMethod = "delivery"
	DeliveryMethodPickup   DeliveryMethod = "pickup"

	PaymentMethodPix  PaymentMethod = "pix"
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

type Order struct {
	ID              string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	StoreID         string         `gorm:"column:store_id;type:varchar(36);not null;index" json:"storeId"`
	ClientID        string         `gorm:"column:client_id;type:varchar(36);index" json:"clientId"`
	CustomerName    string         `gorm:"column:customer_name;not null" json:"customerName"`
	CustomerPhone   string         `gorm:"column:customer_phone" json:"customerPhone"`
	CustomerAddress string         `gorm:"column:customer_address" json:"customerAddress"`
	DeliveryMethod  DeliveryMethod `gorm:"column:delivery_method;type:varchar(20);not null" json:"deliveryMethod"`
	DeliveryFee     float64        `gorm:"column:delivery_fee" json:"deliveryFee"`
	Status          OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Total           float64        `json:"total"`
	Items           OrderItems     `gorm:"column:items;type:jsonb" json:"items"`
	PaymentMethod   PaymentMethod  `gorm:"column:payment_method;type:varchar(20)" json:"paymentMethod"`
	Observation     string         `json:"observation"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"createdAt"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of the order, with name and price captured at
// checkout time so later product edits do not rewrite order history.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

// OrderItems is stored as a single JSON column, preserving line order.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, items)
	case string:
		return json.Unmarshal([]byte(data), items)
	default:
		return errors.New("unsupported type for order items column")
	}
}
