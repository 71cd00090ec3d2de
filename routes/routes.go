package routes

import (
	"github.com/devvitrinefrutal-del/vitrine-api/cart"
	"github.com/devvitrinefrutal-del/vitrine-api/catalog"
	"github.com/devvitrinefrutal-del/vitrine-api/checkout"
	orderControllers "github.com/devvitrinefrutal-del/vitrine-api/controllers/order"
	"github.com/devvitrinefrutal-del/vitrine-api/fulfillment"
	"github.com/devvitrinefrutal-del/vitrine-api/gateway"
	"github.com/devvitrinefrutal-del/vitrine-api/middleware"
	"github.com/devvitrinefrutal-del/vitrine-api/session"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the route groups need.
type Deps struct {
	Gateway   *gateway.StoreGateway
	Cache     *catalog.Cache
	Snapshots cart.SnapshotStore
	Pipeline  *checkout.Pipeline
	Board     *fulfillment.Board
	Sessions  *session.Manager
	Verifier  session.TokenVerifier
	Hub       *orderControllers.Hub
	AdminKey  string
}

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	r.Use(middleware.ResolveActor(deps.Sessions))

	SetupAuthRoutes(r, deps)
	SetupStorefrontRoutes(r, deps)
	SetupCartRoutes(r, deps)
	SetupOrderRoutes(r, deps)
	SetupDashboardRoutes(r, deps)
}
