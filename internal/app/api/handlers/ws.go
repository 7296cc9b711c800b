package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clapboard/membership/internal/auth"
	"github.com/clapboard/membership/internal/realtime"
	"github.com/clapboard/membership/pkg/response"
)

// ApiWebSocket handles GET /ws?token=... Browsers cannot set an
// Authorization header on the upgrade request, so the token travels in the
// query string.
func ApiWebSocket(hub *realtime.Hub, v *auth.Verifier, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "missing token"))
			return
		}
		claims, err := v.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, err.Error()))
			return
		}
		if err := hub.ServeWS(c.Writer, c.Request, claims.UserID(), claims.IsAdmin()); err != nil {
			log.Errorw("ws upgrade failed", "user_id", claims.UserID(), "err", err)
		}
	}
}

func RegisterWebSocketRoutes(r gin.IRouter, hub *realtime.Hub, v *auth.Verifier, log *zap.SugaredLogger) {
	r.GET("/ws", ApiWebSocket(hub, v, log))
}
