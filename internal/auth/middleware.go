package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chaizz/lumen-Park/internal/http/dto"
	"github.com/chaizz/lumen-Park/internal/http/resp"
)

const contextKeyUserID = "user_id"

// Bearer authenticates REST calls from the Authorization header.
func Bearer(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: resp.CodeUnauthorized, Message: "bearer token required"})
			return
		}
		userID, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: resp.CodeUnauthorized, Message: "could not validate credentials"})
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}

// UserID returns the id stored by Bearer, or "" when the route is unauthenticated.
func UserID(c *gin.Context) string {
	return c.GetString(contextKeyUserID)
}
