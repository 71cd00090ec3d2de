package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	StoreID     string     `gorm:"column:store_id;type:varchar(36);not null;index" json:"storeId"`
	Name        string     `gorm:"not null" json:"name"`
	Price       float64    `gorm:"not null" json:"price"`
	Stock       int        `gorm:"not null;default:0" json:"stock"`
	Description string     `json:"description"`
	ImageRef    string     `gorm:"column:image" json:"image"`
	ImageRefs   StringList `gorm:"column:images;type:jsonb" json:"images"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// StringList is a JSON-encoded list column (gallery image refs).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, l)
	case string:
		return json.Unmarshal([]byte(data), l)
	default:
		return errors.New("unsupported type for string list column")
	}
}
