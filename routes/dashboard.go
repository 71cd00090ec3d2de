package routes

import (
	orderControllers "github.com/devvitrinefrutal-del/vitrine-api/controllers/order"
	productController "github.com/devvitrinefrutal-del/vitrine-api/controllers/product"
	"github.com/devvitrinefrutal-del/vitrine-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupDashboardRoutes(r *gin.Engine, deps Deps) {
	dashboard := r.Group("/dashboard", middleware.RequireActor)
	{
		dashboard.GET("/orders", orderControllers.DashboardOrders(deps.Board))

		dashboard.POST("/products", productController.CreateProduct(deps.Gateway, deps.Cache))
		dashboard.PUT("/products/:productID", productController.UpdateProduct(deps.Gateway, deps.Cache))
		dashboard.DELETE("/products/:productID", productController.DeleteProduct(deps.Gateway, deps.Cache))
		dashboard.GET("/products/export", productController.ExportProductsToExcel(deps.Gateway))
	}

	// Admin maintenance surface, API-key protected like the rest of the
	// back office tooling.
	admin := r.Group("/admin", middleware.ValidateAPIKey(deps.AdminKey))
	{
		admin.GET("/orders", orderControllers.AdminOrders(deps.Board))
	}
}
