package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/clapboard/membership/pkg/types"
)

// Payment tracks the monetary transaction tied to a subscription request.
// Amount is fixed at creation from the package price and discount and is
// never recomputed. Status and ApprovalStatus evolve independently.
type Payment struct {
	ID             string  `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID         string  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	SubscriptionID *string `gorm:"column:subscription_id;type:uuid;index" json:"subscription_id"`
	PackageID      *string `gorm:"column:package_id;type:uuid" json:"package_id"`
	Amount         int64   `gorm:"column:amount;type:bigint;not null" json:"amount"`

	Status         types.PaymentStatus         `gorm:"column:status;type:varchar(32);not null" json:"status"`
	ApprovalStatus types.PaymentApprovalStatus `gorm:"column:approval_status;type:varchar(32);not null" json:"approval_status"`
	Method         types.PaymentMethod         `gorm:"column:method;type:varchar(32);not null" json:"method"`

	TransactionID *string `gorm:"column:transaction_id;type:varchar(128)" json:"transaction_id"`
	// Details is a free-form blob supplied by the payment channel.
	Details datatypes.JSONMap `gorm:"column:details;type:jsonb;default:'{}'" json:"details"`

	ApprovedBy      *string    `gorm:"column:approved_by;type:uuid" json:"approved_by"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text" json:"rejection_reason"`
	CompletedAt     *time.Time `gorm:"column:completed_at;default:null" json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payment"
}
