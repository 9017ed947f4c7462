package middleware

import (
	"net/http"
	"strings"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/services"

	"github.com/gin-gonic/gin"
)

// ActorKey is where the verified identity lives in the gin context.
const ActorKey = "actor"

// Authenticate verifies the bearer token and stores the resulting Actor in
// the request context. Requests without a usable identity stop here with
// 401; role-based denial is the services' job and maps to 403 later.
func Authenticate(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		actor, err := auth.ParseAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ActorKey, actor)
		c.Set("user_id", actor.ID.String())
		c.Next()
	}
}

// ActorFromContext fetches the identity Authenticate stored.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := value.(models.Actor)
	return actor, ok
}
