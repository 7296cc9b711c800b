package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clapboard/membership/internal/auth"
	"github.com/clapboard/membership/pkg/logctx"
	"github.com/clapboard/membership/pkg/response"
)

const (
	CtxKeyUserID = "userID"
	CtxKeyRole   = "userRole"
)

// AuthMiddleware validates the Bearer token and stores the caller identity
// on the gin context. Requests without a valid token are rejected.
func AuthMiddleware(v *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "missing bearer token"))
			return
		}

		claims, err := v.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, err.Error()))
			return
		}

		c.Set(CtxKeyUserID, claims.UserID())
		c.Set(CtxKeyRole, claims.Role)

		c.Request = c.Request.WithContext(logctx.WithUserID(c.Request.Context(), claims.UserID()))

		c.Next()
	}
}

// RequireAdmin gates a route group to administrator tokens. It must run
// after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxKeyRole) != "Admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeUnauthorized, "admin role required"))
			return
		}
		c.Next()
	}
}
