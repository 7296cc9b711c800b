package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clapboard/membership/internal/app/api/middleware"
	subsvc "github.com/clapboard/membership/internal/app/service/subscription"
	"github.com/clapboard/membership/pkg/response"
)

// ApiSubscribe handles POST /api/v1/subscriptions. The user id comes from
// the access token, never from the body.
func ApiSubscribe(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subsvc.SubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.UserID = c.GetString(middleware.CtxKeyUserID)
		if req.PackageID == "" {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing package_id"))
			return
		}
		created, err := sub.Subscribe(c.Request.Context(), &req)
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(created))
	}
}

// ApiCancelSubscription handles DELETE /api/v1/subscriptions/current.
// Pending requests are removed outright; active subscriptions keep their
// benefits until the end date but stop renewing.
func ApiCancelSubscription(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := sub.Cancel(c.Request.Context(), c.GetString(middleware.CtxKeyUserID))
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// ApiCurrentSubscription handles GET /api/v1/subscriptions/current. Returns
// data:null when the user has no live subscription.
func ApiCurrentSubscription(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := sub.Current(c.Request.Context(), c.GetString(middleware.CtxKeyUserID))
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(current))
	}
}

// ApiSubscriptionHistory handles GET /api/v1/subscriptions/history.
func ApiSubscriptionHistory(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := sub.History(c.Request.Context(), c.GetString(middleware.CtxKeyUserID))
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

// ApiToggleAutoRenewal handles PUT /api/v1/subscriptions/auto-renewal.
func ApiToggleAutoRenewal(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Enabled *bool `json:"enabled"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing enabled flag"))
			return
		}
		updated, err := sub.ToggleAutoRenewal(c.Request.Context(), c.GetString(middleware.CtxKeyUserID), *req.Enabled)
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(updated))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, sub *subsvc.Service) {
	r.POST("/subscriptions", ApiSubscribe(sub))
	r.GET("/subscriptions/current", ApiCurrentSubscription(sub))
	r.DELETE("/subscriptions/current", ApiCancelSubscription(sub))
	r.GET("/subscriptions/history", ApiSubscriptionHistory(sub))
	r.PUT("/subscriptions/auto-renewal", ApiToggleAutoRenewal(sub))
}
