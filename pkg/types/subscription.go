package types

// SubscriptionStatus is the lifecycle state of a user subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusRejected  SubscriptionStatus = "rejected"
)

// legacySpellingCanceled survived in old records; it is folded into
// SubscriptionStatusCancelled on every read and never written back.
const legacySpellingCanceled = "canceled"

// NormalizeSubscriptionStatus maps raw status strings, including the legacy
// "canceled" spelling, onto the canonical set. Unknown values pass through
// unchanged so callers can surface them instead of masking bad data.
func NormalizeSubscriptionStatus(raw string) SubscriptionStatus {
	if raw == legacySpellingCanceled {
		return SubscriptionStatusCancelled
	}
	return SubscriptionStatus(raw)
}

// Terminal reports whether no further automatic transition leaves the state.
func (s SubscriptionStatus) Terminal() bool {
	switch s {
	case SubscriptionStatusExpired, SubscriptionStatusCancelled, SubscriptionStatusRejected:
		return true
	}
	return false
}

// RenewalStatus tracks the auto-renewal intent independently of the
// subscription status: an active subscription with a cancelled renewal keeps
// its entitlements until natural expiry.
type RenewalStatus string

const (
	RenewalStatusPending   RenewalStatus = "pending"
	RenewalStatusActive    RenewalStatus = "active"
	RenewalStatusCancelled RenewalStatus = "cancelled"
)

// NormalizeRenewalStatus folds the legacy "canceled" spelling like
// NormalizeSubscriptionStatus does for the subscription status.
func NormalizeRenewalStatus(raw string) RenewalStatus {
	if raw == legacySpellingCanceled {
		return RenewalStatusCancelled
	}
	return RenewalStatus(raw)
}
