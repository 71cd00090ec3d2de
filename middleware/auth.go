package middleware

import (
	"net/http"
	"strings"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/devvitrinefrutal-del/vitrine-api/session"
	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// ResolveActor parses the Authorization header into the session Actor when
// present. It never rejects: public routes work without a session, and
// handlers that need one stack RequireActor on top.
func ResolveActor(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			if actor, err := manager.Resolve(token); err == nil {
				c.Set(actorKey, actor)
			}
		}
		c.Next()
	}
}

// RequireActor aborts with 401 unless ResolveActor found a session.
func RequireActor(c *gin.Context) {
	if _, ok := c.Get(actorKey); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}
	c.Next()
}

// ActorFrom returns the resolved actor, or nil for anonymous requests.
func ActorFrom(c *gin.Context) *models.Actor {
	value, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, ok := value.(*models.Actor)
	if !ok {
		return nil
	}
	return actor
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
