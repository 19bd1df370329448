package handlers

import (
	"log"
	"net/http"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// RequireIdentity gates protected routes on the identity headers the
// gateway sets after verifying the caller's token.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Set(identityKey, models.Identity{UserID: userID, Role: c.GetHeader("X-User-Role")})
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identityFrom(c).IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) models.Identity {
	ident, _ := c.MustGet(identityKey).(models.Identity)
	return ident
}

// respondError maps typed engine errors to status codes. Server-side
// detail stays in the logs outside of debug mode.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		if !gin.IsDebugging() {
			msg = "Internal server error"
		}
	}
	c.JSON(status, gin.H{"error": msg})
}
