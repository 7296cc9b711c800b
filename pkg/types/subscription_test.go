package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSubscriptionStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want SubscriptionStatus
	}{
		{"pending", SubscriptionStatusPending},
		{"active", SubscriptionStatusActive},
		{"expired", SubscriptionStatusExpired},
		{"cancelled", SubscriptionStatusCancelled},
		{"canceled", SubscriptionStatusCancelled},
		{"rejected", SubscriptionStatusRejected},
		// unknown values pass through for the caller to surface
		{"bogus", SubscriptionStatus("bogus")},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizeSubscriptionStatus(tc.raw), "raw=%q", tc.raw)
	}
}

func TestSubscriptionStatusTerminal(t *testing.T) {
	require.False(t, SubscriptionStatusPending.Terminal())
	require.False(t, SubscriptionStatusActive.Terminal())
	require.True(t, SubscriptionStatusExpired.Terminal())
	require.True(t, SubscriptionStatusCancelled.Terminal())
	require.True(t, SubscriptionStatusRejected.Terminal())
}

func TestNormalizeRenewalStatus(t *testing.T) {
	require.Equal(t, RenewalStatusCancelled, NormalizeRenewalStatus("canceled"))
	require.Equal(t, RenewalStatusCancelled, NormalizeRenewalStatus("cancelled"))
	require.Equal(t, RenewalStatusActive, NormalizeRenewalStatus("active"))
}
