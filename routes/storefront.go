package routes

import (
	storefrontControllers "github.com/devvitrinefrutal-del/vitrine-api/controllers/storefront"
	"github.com/gin-gonic/gin"
)

func SetupStorefrontRoutes(r *gin.Engine, deps Deps) {
	r.GET("/stores", storefrontControllers.ListStores(deps.Cache))
	r.GET("/stores/:storeID", storefrontControllers.GetStore(deps.Cache))
	r.GET("/products", storefrontControllers.ListProducts(deps.Cache))
	r.GET("/services", storefrontControllers.ListServices(deps.Cache))
	r.POST("/catalog/refresh", storefrontControllers.RefreshCatalog(deps.Cache))
}
