package routes

import (
	cartControllers "github.com/devvitrinefrutal-del/vitrine-api/controllers/cart"
	checkoutControllers "github.com/devvitrinefrutal-del/vitrine-api/controllers/checkout"
	"github.com/devvitrinefrutal-del/vitrine-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupCartRoutes(r *gin.Engine, deps Deps) {
	userCart := r.Group("/cart")
	{
		userCart.GET("", cartControllers.GetCart(deps.Snapshots))
		userCart.POST("/items", cartControllers.AddItem(deps.Snapshots, deps.Cache))
		userCart.PUT("/items/quantity", cartControllers.UpdateQuantity(deps.Snapshots))
		userCart.DELETE("/items/:product_id", cartControllers.RemoveItem(deps.Snapshots))
		userCart.DELETE("", cartControllers.ClearCart(deps.Snapshots))
	}

	r.GET("/checkout/quote", checkoutControllers.GetQuote(deps.Snapshots, deps.Cache))
	r.POST("/checkout", middleware.RequireActor,
		checkoutControllers.Finish(deps.Pipeline, deps.Snapshots, deps.Hub))
}
