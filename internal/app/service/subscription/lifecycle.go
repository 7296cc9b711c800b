package subscription

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/apperr"
	"github.com/clapboard/membership/pkg/logctx"
	"github.com/clapboard/membership/pkg/tool"
	"github.com/clapboard/membership/pkg/types"
)

type SubscribeRequest struct {
	UserID    string              `json:"user_id"`
	PackageID string              `json:"package_id"`
	Method    types.PaymentMethod `json:"payment_method"`
	// Details is the free-form payment channel blob (e.g. transfer note).
	Details map[string]interface{} `json:"payment_details"`
}

// Subscribe creates a pending subscription and its payment row. Fails with
// NotFound when the package is missing or inactive, and with Conflict when
// the user already has a pending or active subscription.
func (s *Service) Subscribe(ctx context.Context, req *SubscribeRequest) (*models.UserSubscription, error) {
	if !req.Method.Valid() {
		return nil, apperr.Validation("unknown payment method %q", req.Method)
	}

	var sub *models.UserSubscription
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", req.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("user %s not found", req.UserID)
			}
			return fmt.Errorf("failed to load user: %w", err)
		}

		var pkg models.SubscriptionPackage
		if err := tx.Where("id = ? AND is_active = ?", req.PackageID, true).First(&pkg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("package %s not found or inactive", req.PackageID)
			}
			return fmt.Errorf("failed to load package: %w", err)
		}

		// Friendly duplicate checks; the partial unique indexes remain the
		// arbiter when concurrent requests race past these reads.
		var count int64
		if err := tx.Model(&models.UserSubscription{}).
			Where("user_id = ? AND status = ?", req.UserID, types.SubscriptionStatusActive).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check active subscription: %w", err)
		}
		if count > 0 {
			return apperr.Conflict("user already has an active subscription")
		}
		if err := tx.Model(&models.UserSubscription{}).
			Where("user_id = ? AND status = ?", req.UserID, types.SubscriptionStatusPending).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check pending subscription: %w", err)
		}
		if count > 0 {
			return apperr.Conflict("user already has a pending subscription")
		}

		now := s.now()
		end := now.AddDate(0, 0, pkg.DurationDays)
		subID := tool.GenerateUUIDV7()

		payment := &models.Payment{
			ID:             tool.GenerateUUIDV7(),
			UserID:         req.UserID,
			SubscriptionID: &subID,
			PackageID:      &pkg.ID,
			Amount:         pkg.DiscountedPrice(),
			Status:         types.PaymentStatusPending,
			ApprovalStatus: types.PaymentApprovalPending,
			Method:         req.Method,
			Details:        datatypes.JSONMap(req.Details),
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		sub = &models.UserSubscription{
			ID:        subID,
			UserID:    req.UserID,
			PackageID: pkg.ID,
			// Provisional window; approval resets it to the approval moment.
			StartDate:     &now,
			EndDate:       &end,
			IsActive:      false,
			Status:        types.SubscriptionStatusPending,
			PaymentID:     &payment.ID,
			RenewalStatus: types.RenewalStatusPending,
			AccountTypeID: pkg.AccountTypeID,
		}
		if err := tx.Create(sub).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("user already has a pending or active subscription")
			}
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		sub.Package = &pkg
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription requested",
		"subscription_id", sub.ID, "user_id", sub.UserID, "package_id", sub.PackageID)
	s.events.SubscriptionRequested(sub)
	return sub, nil
}

// Approve transitions a pending subscription to active. The validity window
// is reset to the approval moment and the user record gains its premium
// entitlements in the same transaction.
func (s *Service) Approve(ctx context.Context, subID, adminID string) (*models.UserSubscription, error) {
	var sub *models.UserSubscription
	var userEmail string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := s.loadForUpdate(tx, subID)
		if err != nil {
			return err
		}
		sub = loaded

		status := types.NormalizeSubscriptionStatus(string(sub.Status))
		if !CanTransition(status, types.SubscriptionStatusActive) {
			return apperr.Conflict("cannot approve subscription in status %q", status)
		}

		var pkg models.SubscriptionPackage
		if err := tx.Where("id = ?", sub.PackageID).First(&pkg).Error; err != nil {
			return fmt.Errorf("failed to load package: %w", err)
		}

		now := s.now()
		end := now.AddDate(0, 0, pkg.DurationDays)
		sub.StartDate = &now
		sub.EndDate = &end
		sub.IsActive = true
		sub.Status = types.SubscriptionStatusActive
		sub.RenewalStatus = types.RenewalStatusActive
		sub.ApprovedBy = &adminID
		sub.ApprovedAt = &now
		sub.PaymentConfirmed = true
		if err := tx.Save(sub).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		if sub.PaymentID != nil {
			updates := map[string]interface{}{
				"status":          types.PaymentStatusCompleted,
				"approval_status": types.PaymentApprovalApproved,
				"approved_by":     adminID,
				"completed_at":    now,
			}
			if err := tx.Model(&models.Payment{}).Where("id = ?", *sub.PaymentID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update payment: %w", err)
			}
		}

		var user models.User
		if err := tx.Where("id = ?", sub.UserID).First(&user).Error; err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		user.IsPremium = true
		user.SubscriptionEndDate = &end
		if pkg.AccountTypeID != nil {
			user.AccountTypeID = pkg.AccountTypeID
		}
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		userEmail = user.Email
		sub.Package = &pkg
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription approved",
		"subscription_id", sub.ID, "user_id", sub.UserID, "approved_by", adminID)
	s.events.SubscriptionDecided(sub)
	s.sendDecisionMail(ctx, userEmail, sub, true, "")
	return sub, nil
}

// Reject transitions a pending subscription to rejected. The user record is
// not touched.
func (s *Service) Reject(ctx context.Context, subID, adminID, reason string) (*models.UserSubscription, error) {
	var sub *models.UserSubscription
	var userEmail string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := s.loadForUpdate(tx, subID)
		if err != nil {
			return err
		}
		sub = loaded

		status := types.NormalizeSubscriptionStatus(string(sub.Status))
		if !CanTransition(status, types.SubscriptionStatusRejected) {
			return apperr.Conflict("cannot reject subscription in status %q", status)
		}

		now := s.now()
		sub.Status = types.SubscriptionStatusRejected
		sub.RejectedBy = &adminID
		sub.RejectedAt = &now
		if reason != "" {
			sub.Notes = reason
		}
		if err := tx.Save(sub).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		if sub.PaymentID != nil {
			updates := map[string]interface{}{
				"status":           types.PaymentStatusFailed,
				"approval_status":  types.PaymentApprovalRejected,
				"rejection_reason": reason,
			}
			if err := tx.Model(&models.Payment{}).Where("id = ?", *sub.PaymentID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update payment: %w", err)
			}
		}

		var user models.User
		if err := tx.Select("email").Where("id = ?", sub.UserID).First(&user).Error; err == nil {
			userEmail = user.Email
		}
		var pkg models.SubscriptionPackage
		if err := tx.Where("id = ?", sub.PackageID).First(&pkg).Error; err == nil {
			sub.Package = &pkg
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription rejected",
		"subscription_id", sub.ID, "user_id", sub.UserID, "rejected_by", adminID, "reason", reason)
	s.events.SubscriptionDecided(sub)
	s.sendDecisionMail(ctx, userEmail, sub, false, reason)
	return sub, nil
}

type CancelResult struct {
	// Deleted is true when a pending subscription (and its payment) was
	// removed outright.
	Deleted      bool                     `json:"deleted"`
	Subscription *models.UserSubscription `json:"subscription,omitempty"`
}

// Cancel removes a pending subscription together with its payment, or flips
// an active subscription's renewal off while keeping its entitlements until
// natural expiry. NotFound when the user has neither.
func (s *Service) Cancel(ctx context.Context, userID string) (*CancelResult, error) {
	var result *CancelResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending models.UserSubscription
		err := tx.Where("user_id = ? AND status = ?", userID, types.SubscriptionStatusPending).
			First(&pending).Error
		if err == nil {
			// Hard delete, not a soft cancel: the request never took effect.
			if pending.PaymentID != nil {
				if err := tx.Where("id = ?", *pending.PaymentID).Delete(&models.Payment{}).Error; err != nil {
					return fmt.Errorf("failed to delete payment: %w", err)
				}
			}
			if err := tx.Where("id = ?", pending.ID).Delete(&models.UserSubscription{}).Error; err != nil {
				return fmt.Errorf("failed to delete subscription: %w", err)
			}
			result = &CancelResult{Deleted: true}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load pending subscription: %w", err)
		}

		var active models.UserSubscription
		err = tx.Where("user_id = ? AND status = ? AND is_active = ?",
			userID, types.SubscriptionStatusActive, true).First(&active).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("no pending or active subscription for user")
			}
			return fmt.Errorf("failed to load active subscription: %w", err)
		}

		// Entitlements survive until natural expiry; only renewal stops.
		now := s.now()
		active.RenewalStatus = types.RenewalStatusCancelled
		active.AutoRenewal = false
		active.CancelledAt = &now
		if err := tx.Save(&active).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}
		result = &CancelResult{Deleted: false, Subscription: &active}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription cancelled", "user_id", userID, "deleted", result.Deleted)
	return result, nil
}

// ToggleAutoRenewal flips auto-renewal on the user's active subscription.
func (s *Service) ToggleAutoRenewal(ctx context.Context, userID string, enabled bool) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND is_active = ?", userID, types.SubscriptionStatusActive, true).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no active subscription for user")
		}
		return nil, fmt.Errorf("failed to load active subscription: %w", err)
	}

	sub.AutoRenewal = enabled
	if enabled {
		sub.RenewalStatus = types.RenewalStatusActive
	} else {
		sub.RenewalStatus = types.RenewalStatusCancelled
	}
	if err := s.db.WithContext(ctx).Save(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}
	return &sub, nil
}

// loadForUpdate takes a row lock so concurrent decisions on the same
// subscription serialize instead of double-applying.
func (s *Service) loadForUpdate(tx *gorm.DB, subID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", subID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("subscription %s not found", subID)
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

func (s *Service) sendDecisionMail(ctx context.Context, email string, sub *models.UserSubscription, approved bool, reason string) {
	if email == "" || s.mailer == nil {
		return
	}
	pkgName := ""
	if sub.Package != nil {
		pkgName = sub.Package.Name
	}
	if err := s.mailer.SendSubscriptionDecision(ctx, email, pkgName, approved, reason, sub.EndDate); err != nil {
		logctx.FromCtx(ctx, s.log).Errorf("failed to send decision mail: %v", err)
	}
}
