package models

import (
	"time"

	"github.com/clapboard/membership/pkg/types"
)

// UserSubscription is a user's time-bounded enrollment in a package with an
// approval workflow. Use CurrentlyActive to determine whether the
// subscription grants entitlements at a point in time.
//
// The partial unique indexes on user_id are the arbiter for the "at most one
// pending / one active subscription per user" invariants; the service-level
// query-then-write checks exist only to produce friendly Conflict errors.
type UserSubscription struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;not null;index:uniq_sub_user_active,unique,where:status = 'active';index:uniq_sub_user_pending,unique,where:status = 'pending'" json:"user_id"`

	PackageID string `gorm:"column:package_id;type:uuid;not null" json:"package_id"`
	Package   *SubscriptionPackage `gorm:"foreignKey:PackageID" json:"package,omitempty"`

	// StartDate/EndDate are provisional while pending; approval resets them to
	// the approval moment.
	StartDate *time.Time `gorm:"column:start_date;default:null" json:"start_date"`
	EndDate   *time.Time `gorm:"column:end_date;default:null" json:"end_date"`

	IsActive bool                     `gorm:"column:is_active;not null;default:false" json:"is_active"`
	Status   types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`

	PaymentID *string `gorm:"column:payment_id;type:uuid" json:"payment_id"`

	RenewalStatus types.RenewalStatus `gorm:"column:renewal_status;type:varchar(32);not null;default:'pending'" json:"renewal_status"`
	AutoRenewal   bool                `gorm:"column:auto_renewal;not null;default:false" json:"auto_renewal"`

	ApprovedBy  *string    `gorm:"column:approved_by;type:uuid" json:"approved_by"`
	ApprovedAt  *time.Time `gorm:"column:approved_at;default:null" json:"approved_at"`
	RejectedBy  *string    `gorm:"column:rejected_by;type:uuid" json:"rejected_by"`
	RejectedAt  *time.Time `gorm:"column:rejected_at;default:null" json:"rejected_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at;default:null" json:"cancelled_at"`

	PaymentConfirmed bool   `gorm:"column:payment_confirmed;not null;default:false" json:"payment_confirmed"`
	Notes            string `gorm:"column:notes;type:text" json:"notes"`

	AccountTypeID *string `gorm:"column:account_type_id;type:uuid" json:"account_type_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserSubscription) TableName() string {
	return "user_subscription"
}

// CurrentlyActive reports whether the subscription grants entitlements at
// now: approved, flagged active, and inside its validity window.
func (s *UserSubscription) CurrentlyActive(now time.Time) bool {
	return s != nil &&
		s.IsActive &&
		s.Status == types.SubscriptionStatusActive &&
		s.StartDate != nil && !s.StartDate.After(now) &&
		s.EndDate != nil && !s.EndDate.Before(now)
}

// PastEndDate reports whether the validity window has elapsed. An active row
// past its end date is due for the expiry cascade.
func (s *UserSubscription) PastEndDate(now time.Time) bool {
	return s != nil && s.EndDate != nil && s.EndDate.Before(now)
}
