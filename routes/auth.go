package routes

import (
	authControllers "github.com/devvitrinefrutal-del/vitrine-api/controllers/auth"
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", authControllers.Login(deps.Sessions, deps.Verifier))
		auth.GET("/me", authControllers.Me(deps.Sessions))
		auth.POST("/logout", authControllers.Logout(deps.Sessions))
	}
}
