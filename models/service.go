package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is a listing offered by a service provider (plumber, hairdresser,
// etc.) rather than a store; browsed like products but never sold through
// the cart.
type Service struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ProviderID    string    `gorm:"column:provider_id;type:varchar(36);index" json:"providerId"`
	Name          string    `gorm:"not null" json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Email         string    `gorm:"index" json:"email"`
	Phone         string    `json:"phone"`
	PriceEstimate float64   `gorm:"column:price_estimate" json:"priceEstimate"`
	ImageRef      string    `gorm:"column:image" json:"image"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Service) TableName() string {
	return "services"
}
