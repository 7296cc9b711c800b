package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/apperr"
	"github.com/clapboard/membership/pkg/logctx"
	"github.com/clapboard/membership/pkg/tool"
	"github.com/clapboard/membership/pkg/types"
)

// Service owns the subscription package catalog, including the benefit-tier
// classification consumed by the ad-benefit resolver.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type CreatePackageRequest struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Price           int64             `json:"price"`
	DurationDays    int               `json:"duration_days"`
	Features        []string          `json:"features"`
	DiscountPercent int               `json:"discount_percent"`
	AccountTypeID   *string           `json:"account_type_id"`
	BenefitTier     types.BenefitTier `json:"benefit_tier"`
}

type UpdatePackageRequest struct {
	Description     *string            `json:"description"`
	Price           *int64             `json:"price"`
	DurationDays    *int               `json:"duration_days"`
	Features        *[]string          `json:"features"`
	IsActive        *bool              `json:"is_active"`
	DiscountPercent *int               `json:"discount_percent"`
	BenefitTier     *types.BenefitTier `json:"benefit_tier"`
}

func validatePackage(name string, price int64, durationDays, discount int, tier types.BenefitTier) error {
	if name == "" {
		return apperr.Validation("package name is required")
	}
	if price < 0 {
		return apperr.Validation("price must be >= 0")
	}
	if durationDays <= 0 {
		return apperr.Validation("duration_days must be > 0")
	}
	if discount < 0 || discount > 100 {
		return apperr.Validation("discount_percent must be in [0,100]")
	}
	if !tier.Valid() {
		return apperr.Validation("unknown benefit tier %q", tier)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req *CreatePackageRequest) (*models.SubscriptionPackage, error) {
	if err := validatePackage(req.Name, req.Price, req.DurationDays, req.DiscountPercent, req.BenefitTier); err != nil {
		return nil, err
	}

	pkg := &models.SubscriptionPackage{
		ID:              tool.GenerateUUIDV7(),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationDays:    req.DurationDays,
		Features:        datatypes.NewJSONSlice(req.Features),
		IsActive:        true,
		DiscountPercent: req.DiscountPercent,
		AccountTypeID:   req.AccountTypeID,
		BenefitTier:     req.BenefitTier,
	}
	if err := s.db.WithContext(ctx).Create(pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("package %q already exists", req.Name)
		}
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("package created", "package_id", pkg.ID, "name", pkg.Name)
	return pkg, nil
}

func (s *Service) Update(ctx context.Context, id string, req *UpdatePackageRequest) (*models.SubscriptionPackage, error) {
	pkg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Price != nil {
		pkg.Price = *req.Price
	}
	if req.DurationDays != nil {
		pkg.DurationDays = *req.DurationDays
	}
	if req.Features != nil {
		pkg.Features = datatypes.NewJSONSlice(*req.Features)
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}
	if req.DiscountPercent != nil {
		pkg.DiscountPercent = *req.DiscountPercent
	}
	if req.BenefitTier != nil {
		pkg.BenefitTier = *req.BenefitTier
	}

	if err := validatePackage(pkg.Name, pkg.Price, pkg.DurationDays, pkg.DiscountPercent, pkg.BenefitTier); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(pkg).Error; err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	return pkg, nil
}

// Disable soft-disables a package. Packages referenced by subscriptions are
// never hard-deleted.
func (s *Service) Disable(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.SubscriptionPackage{}).
		Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to disable package: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("package %s not found", id)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.SubscriptionPackage, error) {
	var pkg models.SubscriptionPackage
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("package %s not found", id)
		}
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	return &pkg, nil
}

// List returns packages ordered by price. With activeOnly, soft-disabled
// packages are hidden (the public listing).
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*models.SubscriptionPackage, error) {
	q := s.db.WithContext(ctx).Order("price asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var pkgs []*models.SubscriptionPackage
	if err := q.Find(&pkgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return pkgs, nil
}
