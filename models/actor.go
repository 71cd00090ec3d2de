package models

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMerchant Role = "merchant"
	RoleProvider Role = "provider"
	RoleCustomer Role = "customer"
)

// Profile is the backend account record; its Role column is authoritative
// for the session (never inferred client-side).
type Profile struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Role      Role      `gorm:"type:varchar(20);default:'customer'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Actor is the authenticated identity driving a session. LinkedStoreID and
// LinkedServiceID are populated only after account linkage resolves, so
// consumers must tolerate them being empty at first sight.
type Actor struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Role            Role   `json:"role"`
	LinkedStoreID   string `json:"linkedStoreId,omitempty"`
	LinkedServiceID string `json:"linkedServiceId,omitempty"`
}
