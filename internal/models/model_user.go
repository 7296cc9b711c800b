package models

import "time"

// User carries the entitlement fields mutated by subscription cascades. The
// rest of the account profile lives outside this service and is never touched
// here except through the documented cascades.
type User struct {
	ID          string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Email       string `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	DisplayName string `gorm:"column:display_name;type:varchar(255)" json:"display_name"`

	IsPremium     bool    `gorm:"column:is_premium;not null;default:false" json:"is_premium"`
	AccountTypeID *string `gorm:"column:account_type_id;type:uuid" json:"account_type_id"`
	RoleID        *string `gorm:"column:role_id;type:uuid" json:"role_id"`
	// SubscriptionEndDate mirrors the active subscription's end date; nil when
	// the user has no active subscription.
	SubscriptionEndDate *time.Time `gorm:"column:subscription_end_date;default:null" json:"subscription_end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "app_user"
}
