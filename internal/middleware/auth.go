package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/igenda-app/igenda-api/internal/guard"
	"github.com/igenda-app/igenda-api/internal/session"
)

const (
	ContextPrincipal    = "principal"
	ContextToken        = "sessionToken"
	ContextUserID       = "userID"
	ContextClientID     = "clientID"
	ContextEnterpriseID = "enterpriseID"
	ContextUserRole     = "userRole"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

func authMiddleware(g *guard.Guard, kind session.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		p, err := g.Authenticate(c.Request.Context(), kind, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ContextPrincipal, p)
		c.Set(ContextToken, token)
		c.Set(ContextEnterpriseID, p.EnterpriseID)

		switch kind {
		case session.KindAdmin:
			c.Set(ContextUserID, p.UserID)
			c.Set(ContextUserRole, p.Role)
		case session.KindClient:
			c.Set(ContextClientID, p.ClientID)
		}

		c.Next()
	}
}

// AuthMiddleware protege o dashboard administrativo.
func AuthMiddleware(g *guard.Guard) gin.HandlerFunc {
	return authMiddleware(g, session.KindAdmin)
}

// ClientAuthMiddleware protege a área autenticada do cliente final.
func ClientAuthMiddleware(g *guard.Guard) gin.HandlerFunc {
	return authMiddleware(g, session.KindClient)
}
