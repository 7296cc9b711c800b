package subscription

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/logctx"
	"github.com/clapboard/membership/pkg/types"
)

// Current returns the user's active subscription, or nil when there is none.
// The read path first runs the lazy expiry check: a row whose window has
// elapsed is expired-and-cascaded synchronously instead of being returned
// stale.
func (s *Service) Current(ctx context.Context, userID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := s.db.WithContext(ctx).Preload("Package").
		Where("user_id = ? AND status = ?", userID, types.SubscriptionStatusActive).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load current subscription: %w", err)
	}

	if sub.IsActive && sub.PastEndDate(s.now()) {
		if _, err := s.ExpireIfDue(ctx, sub.ID); err != nil {
			// Never return stale entitlements; surface the failure instead.
			return nil, fmt.Errorf("lazy expiry failed: %w", err)
		}
		return nil, nil
	}
	return &sub, nil
}

// History returns all of the user's subscriptions, newest first, with status
// spellings normalized.
func (s *Service) History(ctx context.Context, userID string) ([]*models.UserSubscription, error) {
	var subs []*models.UserSubscription
	if err := s.db.WithContext(ctx).Preload("Package").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load subscription history: %w", err)
	}
	for _, sub := range subs {
		sub.Status = types.NormalizeSubscriptionStatus(string(sub.Status))
		sub.RenewalStatus = types.NormalizeRenewalStatus(string(sub.RenewalStatus))
	}
	return subs, nil
}

// Pending lists subscriptions awaiting an administrative decision, oldest
// first.
func (s *Service) Pending(ctx context.Context) ([]*models.UserSubscription, error) {
	var subs []*models.UserSubscription
	if err := s.db.WithContext(ctx).Preload("Package").
		Where("status = ?", types.SubscriptionStatusPending).
		Order("created_at asc").
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load pending subscriptions: %w", err)
	}
	return subs, nil
}

// Admin list pages.
type ScanSubscriptionsRequest struct {
	Filters   []*types.ListFilter `json:"filters"`
	From      int                 `json:"from"`
	Size      int                 `json:"size"`
	SortBy    string              `json:"sort_by"`
	SortOrder string              `json:"sort_order"`
}

type ScanSubscriptionsResponse struct {
	Items []*models.UserSubscription `json:"items"`
	Total int64                      `json:"total"`
}

// ScanSubscriptions serves the admin list page with filters, pagination and
// sorting.
func (s *Service) ScanSubscriptions(ctx context.Context, req *ScanSubscriptionsRequest) (*ScanSubscriptionsResponse, error) {
	q := s.db.WithContext(ctx).Model(&models.UserSubscription{})
	for _, f := range req.Filters {
		if f != nil {
			q = q.Where(f)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	size := req.Size
	if size <= 0 || size > 200 {
		size = 50
	}

	var items []*models.UserSubscription
	// clause.Column quotes the identifier, so a hostile sort_by cannot break
	// out of the ORDER BY.
	if err := q.Preload("Package").
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: sortBy}, Desc: req.SortOrder != "asc"}}}).
		Offset(req.From).Limit(size).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to scan subscriptions: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Debugw("scanned subscriptions", "total", total, "returned", len(items))
	return &ScanSubscriptionsResponse{Items: items, Total: total}, nil
}
