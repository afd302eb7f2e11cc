package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-api/internal/middleware"
	"github.com/rosterhq/roster-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// currentUserID resolves the record-scoping identity: the JWT subject when
// signed in, otherwise the shared anonymous namespace.
func currentUserID(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil && claims.UserID != "" {
		return claims.UserID
	}
	return models.AnonymousUserID
}
