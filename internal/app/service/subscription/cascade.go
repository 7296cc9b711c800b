package subscription

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/logctx"
	"github.com/clapboard/membership/pkg/types"
)

// ExpireIfDue applies the expiry cascade to a subscription whose validity
// window has elapsed. It is the single implementation shared by the sweeper
// and the lazy on-read check, so the two paths cannot diverge.
//
// The cascade is idempotent: a row that is no longer flagged active is left
// untouched, so a double apply (sweeper racing the lazy check) is harmless.
// Returns true when the row was actually expired by this call.
func (s *Service) ExpireIfDue(ctx context.Context, subID string) (bool, error) {
	expired := false
	var sub *models.UserSubscription
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := s.loadForUpdate(tx, subID)
		if err != nil {
			return err
		}
		sub = loaded

		now := s.now()
		if !sub.IsActive || !sub.PastEndDate(now) {
			return nil
		}
		status := types.NormalizeSubscriptionStatus(string(sub.Status))
		if !CanTransition(status, types.SubscriptionStatusExpired) {
			return nil
		}

		sub.IsActive = false
		sub.Status = types.SubscriptionStatusExpired
		if err := tx.Save(sub).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		if err := s.downgradeUser(ctx, tx, sub.UserID); err != nil {
			return err
		}
		expired = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if expired {
		logctx.FromCtx(ctx, s.log).Infow("subscription expired",
			"subscription_id", sub.ID, "user_id", sub.UserID)
		s.events.SubscriptionExpired(sub)
	}
	return expired, nil
}

// downgradeUser strips premium entitlements from the subscription owner.
// A missing Normal account-type seed is logged and skipped rather than
// failing the expiry; elevated roles (Admin, Moderator) are never downgraded.
func (s *Service) downgradeUser(ctx context.Context, tx *gorm.DB, userID string) error {
	var user models.User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logctx.FromCtx(ctx, s.log).Warnw("expiry cascade: user missing", "user_id", userID)
			return nil
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	user.IsPremium = false
	user.SubscriptionEndDate = nil

	if at, err := s.dir.AccountTypeByName(ctx, models.AccountTypeNormal); err != nil {
		logctx.FromCtx(ctx, s.log).Errorf("expiry cascade: account type lookup failed, skipping downgrade of account type: %v", err)
	} else {
		user.AccountTypeID = &at.ID
	}

	elevated := false
	if user.RoleID != nil {
		role, err := s.dir.RoleByID(ctx, *user.RoleID)
		if err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("expiry cascade: role lookup failed, leaving role untouched: %v", err)
			elevated = true // unknown role: do not risk stripping privileges
		} else {
			elevated = role.Elevated()
		}
	}
	if !elevated {
		if role, err := s.dir.RoleByName(ctx, models.RoleUser); err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("expiry cascade: default role lookup failed, leaving role untouched: %v", err)
		} else {
			user.RoleID = &role.ID
		}
	}

	if err := tx.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to downgrade user: %w", err)
	}
	return nil
}
