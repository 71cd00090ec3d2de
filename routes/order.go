package routes

import (
	orderControllers "github.com/devvitrinefrutal-del/vitrine-api/controllers/order"
	"github.com/devvitrinefrutal-del/vitrine-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/orders")
	{
		// websocket endpoint for real-time order updates
		orders.GET("/ws", deps.Hub.Handler)

		orders.GET("/mine", middleware.RequireActor, orderControllers.MyOrders(deps.Gateway))

		// Fulfillment board transitions (merchant-scoped)
		orders.PUT("/:orderID/advance", middleware.RequireActor, orderControllers.AdvanceOrder(deps.Board))
		orders.PUT("/:orderID/cancel", middleware.RequireActor, orderControllers.CancelOrder(deps.Board))
	}
}
