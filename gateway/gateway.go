package gateway

import (
	"context"
	"errors"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// StoreGateway is the typed CRUD facade over the relational backend. All
// reads and writes go through the models' explicit column mappings; no
// untyped row maps leave this package.
type StoreGateway struct {
	db *gorm.DB
}

func New(db *gorm.DB) *StoreGateway {
	return &StoreGateway{db: db}
}

// Migrate creates/updates the backing tables for every collection the
// storefront consumes.
func (g *StoreGateway) Migrate() error {
	return g.db.AutoMigrate(
		&models.Profile{},
		&models.Store{},
		&models.Service{},
		&models.Product{},
		&models.Order{},
	)
}

func (g *StoreGateway) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := g.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (g *StoreGateway) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return g.db.WithContext(ctx).Create(profile).Error
}

func (g *StoreGateway) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	return g.db.WithContext(ctx).Save(profile).Error
}
