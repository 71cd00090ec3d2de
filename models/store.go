package models

import (
	"time"

	"gorm.io/gorm"
)

type Store struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerID     string    `gorm:"column:owner_id;type:varchar(36);index" json:"ownerId"`
	Name        string    `gorm:"not null" json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Email       string    `gorm:"index" json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DeliveryFee float64   `gorm:"column:delivery_fee" json:"deliveryFee"`
	ImageRef    string    `gorm:"column:image" json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}
