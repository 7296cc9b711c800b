package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/clapboard/membership/pkg/types"
)

// SubscriptionPackage is a purchasable plan. Packages are soft-disabled via
// IsActive and never hard-deleted while referenced by subscriptions.
type SubscriptionPackage struct {
	ID          string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name        string `gorm:"column:name;type:varchar(128);not null;uniqueIndex" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	// Price is in integer currency units (e.g. VND).
	Price        int64 `gorm:"column:price;type:bigint;not null" json:"price"`
	DurationDays int   `gorm:"column:duration_days;not null" json:"duration_days"`
	// Features is the ordered list of feature strings shown to clients.
	Features        datatypes.JSONSlice[string] `gorm:"column:features;type:jsonb;default:'[]'" json:"features"`
	IsActive        bool                        `gorm:"column:is_active;not null;default:true" json:"is_active"`
	DiscountPercent int                         `gorm:"column:discount_percent;not null;default:0" json:"discount_percent"`
	AccountTypeID   *string                     `gorm:"column:account_type_id;type:uuid" json:"account_type_id"`
	// BenefitTier is the catalog-owned ad-benefit classification. Empty means
	// unclassified; the resolver then falls back to name matching.
	BenefitTier types.BenefitTier `gorm:"column:benefit_tier;type:varchar(32);not null;default:''" json:"benefit_tier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SubscriptionPackage) TableName() string {
	return "subscription_package"
}

// DiscountedPrice is the amount fixed onto a payment row at request time.
func (p *SubscriptionPackage) DiscountedPrice() int64 {
	return types.DiscountedAmount(p.Price, p.DiscountPercent)
}
