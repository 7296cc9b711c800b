package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/clapboard/membership/internal/app/api/middleware"
	subsvc "github.com/clapboard/membership/internal/app/service/subscription"
	"github.com/clapboard/membership/internal/app/service/sweeper"
	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/response"
	"github.com/clapboard/membership/pkg/types"
)

type SubscriptionItem struct {
	ID               string                   `json:"id"`
	UserID           string                   `json:"user_id"`
	PackageID        string                   `json:"package_id"`
	PackageName      string                   `json:"package_name,omitempty"`
	Status           types.SubscriptionStatus `json:"status"`
	RenewalStatus    types.RenewalStatus      `json:"renewal_status"`
	IsActive         bool                     `json:"is_active"`
	AutoRenewal      bool                     `json:"auto_renewal"`
	StartDate        *time.Time               `json:"start_date"`
	EndDate          *time.Time               `json:"end_date"`
	PaymentID        *string                  `json:"payment_id"`
	PaymentConfirmed bool                     `json:"payment_confirmed"`
	Notes            string                   `json:"notes,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

func toSubscriptionItem(m *models.UserSubscription) *SubscriptionItem {
	item := &SubscriptionItem{
		ID:               m.ID,
		UserID:           m.UserID,
		PackageID:        m.PackageID,
		Status:           m.Status,
		RenewalStatus:    m.RenewalStatus,
		IsActive:         m.IsActive,
		AutoRenewal:      m.AutoRenewal,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		PaymentID:        m.PaymentID,
		PaymentConfirmed: m.PaymentConfirmed,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Package != nil {
		item.PackageName = m.Package.Name
	}
	return item
}

// ApiListPendingSubscriptions handles GET /api/v1/admin/subscriptions/pending,
// oldest request first.
func ApiListPendingSubscriptions(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := sub.Pending(c.Request.Context())
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(lo.Map(items, func(m *models.UserSubscription, _ int) *SubscriptionItem { return toSubscriptionItem(m) })))
	}
}

type ListSubscriptionsResponse struct {
	Items []*SubscriptionItem `json:"items"`
	Total int64               `json:"total"`
}

// ApiListSubscriptions handles POST /api/v1/admin/subscriptions/list with
// filters, pagination and sorting.
func ApiListSubscriptions(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subsvc.ScanSubscriptionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := sub.ScanSubscriptions(c.Request.Context(), &req)
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		items := lo.Map(res.Items, func(m *models.UserSubscription, _ int) *SubscriptionItem { return toSubscriptionItem(m) })
		c.JSON(http.StatusOK, response.OKT(&ListSubscriptionsResponse{Items: items, Total: res.Total}))
	}
}

// ApiApproveSubscription handles POST /api/v1/admin/subscriptions/:id/approve.
func ApiApproveSubscription(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		approved, err := sub.Approve(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxKeyUserID))
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(approved)))
	}
}

// ApiRejectSubscription handles POST /api/v1/admin/subscriptions/:id/reject.
func ApiRejectSubscription(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Reason string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		rejected, err := sub.Reject(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxKeyUserID), req.Reason)
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(rejected)))
	}
}

// ApiRunSweep handles POST /api/v1/admin/sweep, a manual trigger for the
// scheduled expiry pass.
func ApiRunSweep(sw *sweeper.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := sw.Sweep(c.Request.Context())
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminSubscriptionRoutes(r gin.IRouter, sub *subsvc.Service, sw *sweeper.Service) {
	r.GET("/subscriptions/pending", ApiListPendingSubscriptions(sub))
	r.POST("/subscriptions/list", ApiListSubscriptions(sub))
	r.POST("/subscriptions/:id/approve", ApiApproveSubscription(sub))
	r.POST("/subscriptions/:id/reject", ApiRejectSubscription(sub))
	r.POST("/sweep", ApiRunSweep(sw))
}
