package models

import "time"

// Default directory names resolved by the expiry cascade.
const (
	AccountTypeNormal = "Normal"

	RoleUser      = "User"
	RoleAdmin     = "Admin"
	RoleModerator = "Moderator"
)

// AccountType is a lookup record linking packages and users to an account
// class (e.g. Normal, Premium).
type AccountType struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(64);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AccountType) TableName() string {
	return "account_type"
}

type Role struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(64);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Role) TableName() string {
	return "role"
}

// Elevated reports whether the role must never be downgraded by the expiry
// cascade.
func (r *Role) Elevated() bool {
	return r != nil && (r.Name == RoleAdmin || r.Name == RoleModerator)
}
