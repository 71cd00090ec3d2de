package authControllers

import (
	"net/http"

	"github.com/devvitrinefrutal-del/vitrine-api/middleware"
	"github.com/devvitrinefrutal-del/vitrine-api/session"
	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	IDToken  string `json:"idToken" binding:"required"`
	Remember bool   `json:"remember"`
}

// POST /auth/login
//
// The identity token comes from the external provider; this service only
// verifies it, resolves the actor (including account linkage) and issues
// the session token.
func Login(manager *session.Manager, verifier session.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), input.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid identity token"})
			return
		}

		actor, token, err := manager.Login(c.Request.Context(), identity, input.Remember)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"actor":   actor,
			"token":   token,
		})
	}
}

// GET /auth/me
func Me(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.ActorFrom(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Prefer the remembered snapshot when one exists; it survives
		// restarts and carries the latest linkage.
		if remembered := manager.Restore(c.Request.Context(), actor.ID); remembered != nil {
			actor = remembered
		}
		c.JSON(http.StatusOK, actor)
	}
}

// POST /auth/logout
func Logout(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.ActorFrom(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := manager.Forget(c.Request.Context(), actor.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
