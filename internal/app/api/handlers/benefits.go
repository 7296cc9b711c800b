package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clapboard/membership/internal/app/api/middleware"
	"github.com/clapboard/membership/internal/app/service/benefit"
	"github.com/clapboard/membership/pkg/response"
)

// ApiGetBenefits handles GET /api/v1/benefits: the ad-suppression flags the
// player applies for the authenticated user.
func ApiGetBenefits(svc *benefit.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		benefits, err := svc.Resolve(c.Request.Context(), c.GetString(middleware.CtxKeyUserID))
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(benefits))
	}
}

func RegisterBenefitRoutes(r gin.IRouter, svc *benefit.Service) {
	r.GET("/benefits", ApiGetBenefits(svc))
}
