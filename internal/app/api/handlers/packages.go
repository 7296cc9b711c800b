package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/clapboard/membership/internal/app/service/catalog"
	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/response"
)

// PackageItem is the client view of a subscription package, including the
// effective price after discount.
type PackageItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           int64    `json:"price"`
	DiscountPercent int      `json:"discount_percent"`
	DiscountedPrice int64    `json:"discounted_price"`
	DurationDays    int      `json:"duration_days"`
	Features        []string `json:"features"`
	IsActive        bool     `json:"is_active"`
}

func toPackageItem(p *models.SubscriptionPackage) *PackageItem {
	return &PackageItem{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		DiscountedPrice: p.DiscountedPrice(),
		DurationDays:    p.DurationDays,
		Features:        p.Features,
		IsActive:        p.IsActive,
	}
}

// ApiListPackages handles GET /api/v1/packages. The public listing only ever
// shows active packages; the full catalog lives on the admin route.
func ApiListPackages(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pkgs, err := svc.List(c.Request.Context(), true)
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		items := lo.Map(pkgs, func(p *models.SubscriptionPackage, _ int) *PackageItem { return toPackageItem(p) })
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

// ApiGetPackage handles GET /api/v1/packages/:id.
func ApiGetPackage(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pkg, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toPackageItem(pkg)))
	}
}

// ApiListAllPackages handles GET /api/v1/admin/packages, including
// soft-disabled packages.
func ApiListAllPackages(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pkgs, err := svc.List(c.Request.Context(), false)
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		items := lo.Map(pkgs, func(p *models.SubscriptionPackage, _ int) *PackageItem { return toPackageItem(p) })
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

// ApiCreatePackage handles POST /api/v1/admin/packages.
func ApiCreatePackage(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreatePackageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		pkg, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toPackageItem(pkg)))
	}
}

// ApiUpdatePackage handles PUT /api/v1/admin/packages/:id.
func ApiUpdatePackage(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.UpdatePackageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		pkg, err := svc.Update(c.Request.Context(), c.Param("id"), &req)
		if err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toPackageItem(pkg)))
	}
}

// ApiDisablePackage handles DELETE /api/v1/admin/packages/:id. Packages are
// soft-disabled so historic subscriptions keep their linkage.
func ApiDisablePackage(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Disable(c.Request.Context(), c.Param("id")); err != nil {
			status, code := response.Classify(err)
			c.JSON(status, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

func RegisterPackageRoutes(r gin.IRouter, svc *catalog.Service) {
	r.GET("/packages", ApiListPackages(svc))
	r.GET("/packages/:id", ApiGetPackage(svc))
}

func RegisterAdminPackageRoutes(r gin.IRouter, svc *catalog.Service) {
	r.GET("/packages", ApiListAllPackages(svc))
	r.POST("/packages", ApiCreatePackage(svc))
	r.PUT("/packages/:id", ApiUpdatePackage(svc))
	r.DELETE("/packages/:id", ApiDisablePackage(svc))
}
